package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/gorilla/mux"
)

const maxUploadSize = 100 << 20 // 100MB

type ImportHandler struct {
	importer Importer
	dir      string
	l        logger.Logger
}

// NewImportHandler saves uploads under dir, which must already exist.
func NewImportHandler(importer Importer, dir string, l logger.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, dir: dir, l: l}
}

func (h *ImportHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/students/import", h.Upload).Methods(http.MethodPost)
}

type importResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// Upload stores every file in the "files" form field and imports them in
// the background. Files that cannot be saved or have an unsupported
// extension are skipped.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusRequestEntityTooLarge, "File too large or bad request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeMessage(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	var wg sync.WaitGroup
	fileNames := make([]string, 0, len(files))

	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if !service.SupportedFile(name) {
			h.l.Warn("skipping unsupported upload", logger.String("file", name))
			continue
		}

		savePath := filepath.Join(h.dir, name)
		if err := saveUpload(fh, savePath); err != nil {
			h.l.Error("saving upload", logger.String("file", name), logger.Error(err))
			continue
		}
		fileNames = append(fileNames, name)

		wg.Add(1)
		go func(filePath string) {
			defer wg.Done()
			// the request context ends with this response
			if err := h.importer.ProcessFile(context.Background(), filePath); err != nil {
				h.l.Error("processing import", logger.String("file", filePath), logger.Error(err))
			}
		}(savePath)
	}

	if len(fileNames) == 0 {
		writeMessage(w, http.StatusBadRequest, "No supported files uploaded")
		return
	}

	go func() {
		wg.Wait()
		h.l.Info("all uploaded files processed", logger.Int("files", len(fileNames)))
	}()

	writeJSON(w, http.StatusAccepted, importResponse{
		Message: "Files uploaded successfully and processing started",
		Files:   fileNames,
	})
}

func saveUpload(fh *multipart.FileHeader, savePath string) error {
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	outFile, err := os.Create(savePath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outFile, file); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
