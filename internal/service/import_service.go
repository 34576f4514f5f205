package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"coursemanagement/internal/metrics"
	"coursemanagement/internal/model"
	"coursemanagement/internal/pkg/logger"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportService bulk-loads student registrations from CSV or XLSX files.
// Every row is studentId,name,email,course[,registrationDate] after a
// header row.
type ImportService struct {
	db    *gorm.DB
	store ProgressStore
	l     logger.Logger

	// progressLock serialises read-modify-write cycles on the store
	progressLock      sync.Mutex
	progressListeners map[chan ProgressInfo]bool
	listenerLock      sync.RWMutex

	workerSemaphore chan struct{}
	batchSize       int
}

func NewImportService(db *gorm.DB, store ProgressStore, l logger.Logger, batchSize int) *ImportService {
	maxWorkers := runtime.NumCPU() * 2
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &ImportService{
		db:                db,
		store:             store,
		l:                 l,
		progressListeners: make(map[chan ProgressInfo]bool),
		workerSemaphore:   make(chan struct{}, maxWorkers),
		batchSize:         batchSize,
	}
}

// SupportedFile reports whether name has an extension the importer reads.
func SupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

func (s *ImportService) RegisterProgressListener(ch chan ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	s.progressListeners[ch] = true
}

func (s *ImportService) UnregisterProgressListener(ch chan ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	delete(s.progressListeners, ch)
}

// broadcastProgress never blocks; listeners that are not ready miss the update.
func (s *ImportService) broadcastProgress(progress ProgressInfo) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	for listener := range s.progressListeners {
		select {
		case listener <- progress:
		default:
		}
	}
}

func (s *ImportService) GetFileProgress(ctx context.Context, fileName string) (*ProgressInfo, error) {
	return s.store.Get(ctx, fileName)
}

func (s *ImportService) GetAllFileProgress(ctx context.Context) ([]ProgressInfo, error) {
	return s.store.List(ctx)
}

// mutate applies fn to the stored progress of fileName, saves it and
// broadcasts the result.
func (s *ImportService) mutate(ctx context.Context, fileName string, fn func(p *ProgressInfo)) {
	s.progressLock.Lock()
	defer s.progressLock.Unlock()

	p, err := s.store.Get(ctx, fileName)
	if err != nil {
		s.l.Error("load import progress", logger.String("file", fileName), logger.Error(err))
		return
	}
	if p == nil {
		return
	}
	fn(p)
	if err := s.store.Save(ctx, *p); err != nil {
		s.l.Error("save import progress", logger.String("file", fileName), logger.Error(err))
		return
	}
	s.broadcastProgress(*p)
}

func (s *ImportService) updateProgress(ctx context.Context, fileName string, processed, imported int) {
	s.mutate(ctx, fileName, func(p *ProgressInfo) {
		p.Processed += processed
		if p.Processed > p.TotalRecords {
			p.Processed = p.TotalRecords
		}
		p.Imported += imported
	})
}

func (s *ImportService) updateProgressError(ctx context.Context, fileName string, err error) error {
	s.mutate(ctx, fileName, func(p *ProgressInfo) {
		p.Status = StatusError
		p.Error = err.Error()
		p.EndTime = time.Now()
	})
	return err
}

// ProcessFile imports one file and blocks until every row is handled.
func (s *ImportService) ProcessFile(ctx context.Context, filePath string) error {
	fileName := filepath.Base(filePath)
	startTime := time.Now()

	s.progressLock.Lock()
	initial := ProgressInfo{FileName: fileName, Status: StatusProcessing, StartTime: startTime}
	err := s.store.Save(ctx, initial)
	s.progressLock.Unlock()
	if err != nil {
		return fmt.Errorf("init progress for %s: %w", fileName, err)
	}
	s.broadcastProgress(initial)

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return s.updateProgressError(ctx, fileName, fmt.Errorf("failed to get file info: %w", err))
	}

	totalRecords, err := countRecords(filePath)
	if err != nil {
		return s.updateProgressError(ctx, fileName, fmt.Errorf("failed to count records: %w", err))
	}
	s.mutate(ctx, fileName, func(p *ProgressInfo) {
		p.TotalRecords = totalRecords
	})

	reader, err := openRows(filePath)
	if err != nil {
		return s.updateProgressError(ctx, fileName, fmt.Errorf("failed to open file: %w", err))
	}
	defer reader.Close()
	if _, err := reader.Read(); err != nil && !errors.Is(err, io.EOF) {
		return s.updateProgressError(ctx, fileName, fmt.Errorf("failed to read header: %w", err))
	}

	numWorkers := calculateWorkers(fileInfo.Size())
	s.l.Info("importing students",
		logger.String("file", fileName),
		logger.Int("workers", numWorkers),
		logger.Int64("size", fileInfo.Size()),
		logger.Int("records", totalRecords))

	bufferSize := 1000
	if numWorkers > 10 {
		bufferSize = numWorkers * 100
	}

	rowCh := make(chan []string, bufferSize)
	var wg sync.WaitGroup
	seenIDs := sync.Map{}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go s.worker(ctx, fileName, rowCh, &seenIDs, &wg)
	}

	go func() {
		defer close(rowCh)
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if isRowError(err) {
					s.l.Warn("skipping unreadable row", logger.String("file", fileName), logger.Error(err))
					continue
				}
				s.l.Error("reading import file", logger.String("file", fileName), logger.Error(err))
				return
			}
			rowCh <- record
		}
	}()

	wg.Wait()

	var imported int
	s.mutate(ctx, fileName, func(p *ProgressInfo) {
		p.Status = StatusCompleted
		p.EndTime = time.Now()
		p.Processed = p.TotalRecords
		imported = p.Imported
	})
	metrics.ImportedStudents.Add(float64(imported))

	s.l.Info("import completed",
		logger.String("file", fileName),
		logger.Int("imported", imported),
		logger.Duration("took", time.Since(startTime)))
	return nil
}

// Prune drops finished entries that ended more than olderThan ago.
func (s *ImportService) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	s.progressLock.Lock()
	defer s.progressLock.Unlock()

	all, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	pruned := 0
	for _, p := range all {
		if !p.Finished() || p.EndTime.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, p.FileName); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}

// calculateWorkers scales the pool with file size, capped by the CPU count.
func calculateWorkers(fileSize int64) int {
	cpus := runtime.NumCPU()

	switch {
	case fileSize < 1_000_000:
		return min(2, cpus)
	case fileSize < 10_000_000:
		return min(4, cpus)
	case fileSize < 100_000_000:
		return min(8, cpus)
	case fileSize < 1_000_000_000:
		return min(16, cpus)
	}
	return cpus
}

func (s *ImportService) worker(ctx context.Context, fileName string, rowCh <-chan []string, seenIDs *sync.Map, wg *sync.WaitGroup) {
	s.workerSemaphore <- struct{}{}
	defer func() {
		<-s.workerSemaphore
		wg.Done()
	}()

	var students []model.Student
	processed := 0

	flush := func() {
		imported := 0
		if len(students) > 0 {
			n, err := s.saveBatch(ctx, students)
			if err != nil {
				s.l.Error("inserting student batch", logger.String("file", fileName), logger.Error(err))
			}
			imported = n
			students = nil
		}
		if processed > 0 || imported > 0 {
			s.updateProgress(ctx, fileName, processed, imported)
		}
		processed = 0
	}

	for record := range rowCh {
		processed++

		student, err := parseStudentRow(record)
		if err != nil {
			s.l.Debug("skipping invalid row", logger.String("file", fileName), logger.Error(err))
			continue
		}
		if _, loaded := seenIDs.LoadOrStore(student.StudentID, struct{}{}); loaded {
			s.l.Debug("skipping duplicate student ID", logger.String("studentId", student.StudentID))
			continue
		}

		students = append(students, student)
		if len(students) >= s.batchSize {
			flush()
		}
	}

	flush()
}

// saveBatch inserts students, leaving rows that clash with an existing
// student ID or email untouched. It returns the number of rows inserted.
func (s *ImportService) saveBatch(ctx context.Context, students []model.Student) (int, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&students)
	return int(res.RowsAffected), res.Error
}

func parseStudentRow(record []string) (model.Student, error) {
	if len(record) < 4 {
		return model.Student{}, fmt.Errorf("expected at least 4 columns, got %d", len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	student := model.Student{
		StudentID: record[0],
		Name:      record[1],
		Email:     record[2],
		Course:    record[3],
	}
	if student.StudentID == "" || student.Name == "" || student.Email == "" || student.Course == "" {
		return model.Student{}, fmt.Errorf("missing required field in row %v", record)
	}
	if len(record) > 4 && record[4] != "" {
		d, err := model.ParseDate(record[4])
		if err != nil {
			return model.Student{}, err
		}
		student.RegistrationDate = d
	}
	return student, nil
}

type rowReader interface {
	Read() ([]string, error)
	Close() error
}

func openRows(path string) (rowReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return &csvRows{f: f, r: r}, nil
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		sheet := f.GetSheetName(0)
		if sheet == "" {
			f.Close()
			return nil, errors.New("excel file does not contain any sheets")
		}
		rows, err := f.Rows(sheet)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &xlsxRows{f: f, rows: rows}, nil
	}
	return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
}

func countRecords(path string) (int, error) {
	reader, err := openRows(path)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for {
		_, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !isRowError(err) {
			return count, err
		}
		count++
	}
	return count, nil
}

// isRowError reports whether err only affects the current CSV row.
func isRowError(err error) bool {
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}

type csvRows struct {
	f *os.File
	r *csv.Reader
}

func (c *csvRows) Read() ([]string, error) {
	return c.r.Read()
}

func (c *csvRows) Close() error {
	return c.f.Close()
}

type xlsxRows struct {
	f    *excelize.File
	rows *excelize.Rows
}

func (x *xlsxRows) Read() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return x.rows.Columns()
}

func (x *xlsxRows) Close() error {
	if err := x.rows.Close(); err != nil {
		x.f.Close()
		return err
	}
	return x.f.Close()
}
