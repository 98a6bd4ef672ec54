package controllers

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/hrgate/hrgate/modules/hrm/bulkimport"
	"github.com/hrgate/hrgate/pkg/composables"
	"github.com/hrgate/hrgate/pkg/httpapi"
)

// BulkImportController exposes the upload pipeline as a JSON API. The tenant
// comes from middleware; handlers never read it themselves.
type BulkImportController struct {
	service       *bulkimport.Service
	basePath      string
	maxUploadSize int64
}

func NewBulkImportController(service *bulkimport.Service, maxUploadSize int64) *BulkImportController {
	return &BulkImportController{
		service:       service,
		basePath:      "/hrm/bulk-import",
		maxUploadSize: maxUploadSize,
	}
}

func (c *BulkImportController) Key() string {
	return c.basePath
}

func (c *BulkImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.importFile).Methods(http.MethodPost)
	router.HandleFunc("/validate", c.validateFile).Methods(http.MethodPost)
	router.HandleFunc("/template", c.downloadTemplate).Methods(http.MethodGet)
}

func (c *BulkImportController) importFile(w http.ResponseWriter, r *http.Request) {
	upload, ok := c.readUpload(w, r)
	if !ok {
		return
	}

	result, err := c.service.Import(r.Context(), upload)
	if err != nil {
		if result != nil {
			// Ingestion was aborted mid-batch. The rows created before the
			// failure are committed, so the partial result goes out with the
			// failure status.
			composables.UseLogger(r.Context()).WithError(err).Error("bulk import aborted")
			_ = httpapi.WriteJSON(w, http.StatusInternalServerError, result)
			return
		}
		c.writeCallError(w, r, err)
		return
	}

	_ = httpapi.WriteJSON(w, importStatus(result), result)
}

func (c *BulkImportController) validateFile(w http.ResponseWriter, r *http.Request) {
	upload, ok := c.readUpload(w, r)
	if !ok {
		return
	}

	report, err := c.service.Validate(r.Context(), upload)
	if err != nil {
		c.writeCallError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, report)
}

func (c *BulkImportController) downloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := bulkimport.BuildTemplate()
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("template build failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "TEMPLATE_FAILED",
			"failed to build the import template", nil)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-import-template.xlsx"`)
	_, _ = w.Write(data)
}

// importStatus maps the outcome to the response code: 200 when every row was
// created, 207 on partial success, 422 when the file was well-formed but not
// a single row made it in.
func importStatus(result *bulkimport.UploadResult) int {
	switch {
	case result.Success:
		return http.StatusOK
	case result.SuccessCount > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusUnprocessableEntity
	}
}

func (c *BulkImportController) readUpload(w http.ResponseWriter, r *http.Request) (bulkimport.Upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadSize+1)
	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_MULTIPART",
			"expected a multipart form with a \"file\" field", nil)
		return bulkimport.Upload{}, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "FILE_MISSING",
			"missing \"file\" field", nil)
		return bulkimport.Upload{}, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "FILE_UNREADABLE",
			"failed to read the uploaded file", nil)
		return bulkimport.Upload{}, false
	}
	return bulkimport.Upload{
		Filename: header.Filename,
		MIME:     header.Header.Get("Content-Type"),
		Data:     data,
	}, true
}

// writeCallError maps call-level pipeline errors. Format problems are the
// client's to fix; everything else is an infrastructure failure.
func (c *BulkImportController) writeCallError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bulkimport.ErrUnsupportedFormat):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error(), nil)
	case errors.Is(err, bulkimport.ErrUnreadableFile):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNREADABLE_FILE", err.Error(), nil)
	case errors.Is(err, bulkimport.ErrEmptyFile):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "EMPTY_FILE", err.Error(), nil)
	case errors.Is(err, bulkimport.ErrFileTooLarge):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "FILE_TOO_LARGE", err.Error(), nil)
	case errors.Is(err, bulkimport.ErrTooManyRows):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TOO_MANY_ROWS", err.Error(), nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("bulk import failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "IMPORT_FAILED",
			"import failed due to an internal error", nil)
	}
}
