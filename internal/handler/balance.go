package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/service"
	"github.com/maxviazov/wealth-balance-service/pkg/response"
)

type BalanceHandler struct {
	svc service.BalanceService
}

func NewBalanceHandler(svc service.BalanceService) *BalanceHandler { return &BalanceHandler{svc: svc} }

func (h *BalanceHandler) Register(r *gin.RouterGroup) {
	r.GET(BalancesPath, h.list)
}

// list serves one page of the balance snapshot as of as_of (default now).
func (h *BalanceHandler) list(c *gin.Context) {
	req, err := parseBalanceRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	conn, err := h.svc.ListBalances(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, conn)
}

// parseBalanceRequest reports every malformed query parameter at once.
// Cursor contents are left to the pagination core to judge.
func parseBalanceRequest(c *gin.Context) (pagination.Request, error) {
	var (
		req   pagination.Request
		ferrs []service.FieldError
	)
	if v, ok := c.GetQuery("as_of"); ok {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "as_of", Message: "must be an RFC3339 timestamp"})
		} else {
			req.AsOf = t.UTC()
		}
	}
	if v, ok := c.GetQuery("after"); ok {
		req.After = &v
	}
	if v, ok := c.GetQuery("before"); ok {
		req.Before = &v
	}
	for _, name := range []string{"first", "last"} {
		v, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: name, Message: "must be an integer"})
			continue
		}
		if name == "first" {
			req.First = &n
		} else {
			req.Last = &n
		}
	}
	if len(ferrs) > 0 {
		return pagination.Request{}, service.NewInvalidInputError(ferrs...)
	}
	return req, nil
}
