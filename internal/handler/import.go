package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/wealth-balance-service/internal/importer"
	"github.com/maxviazov/wealth-balance-service/internal/service"
	"github.com/maxviazov/wealth-balance-service/pkg/response"
)

// maxImportBody caps the JSON payload accepted by POST /import.
const maxImportBody = 32 << 20

type ImportHandler struct {
	svc service.BalanceService
}

func NewImportHandler(svc service.BalanceService) *ImportHandler { return &ImportHandler{svc: svc} }

func (h *ImportHandler) Register(r *gin.RouterGroup) {
	r.POST(ImportPath, h.create)
}

func (h *ImportHandler) create(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBody)
	records, err := importer.Decode(body)
	if err != nil {
		// parse details stay internal
		response.WriteError(c, service.NewInvalidInputError(service.FieldError{
			Field:   "body",
			Message: "must be a JSON array of asset records",
		}))
		return
	}
	res, err := h.svc.ImportAssets(c.Request.Context(), records)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, res)
}
