package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kgzivf/blogbackend/internal/query"
	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"
	"github.com/kgzivf/blogbackend/internal/transport"
	"github.com/kgzivf/blogbackend/pkg"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=postgresql_mocks_test.go -package=proxy_test

// sqlRunner is the slice of transport.SQLExecutor the endpoint needs.
type sqlRunner interface {
	Query(ctx context.Context, sql string, params []any) ([]query.Row, error)
	TestConnection(ctx context.Context) (*transport.ConnectionInfo, error)
}

const (
	ActionQuery          = "query"
	ActionInsert         = "insert"
	ActionUpdate         = "update"
	ActionDelete         = "delete"
	ActionTestConnection = "testConnection"
)

type PostgreSQLRequest struct {
	Action         string    `json:"action"`
	SQL            string    `json:"sql"`
	Params         []any     `json:"params"`
	Table          string    `json:"table"`
	Data           query.Row `json:"data"`
	WhereCondition string    `json:"whereCondition"`
	WhereParams    []any     `json:"whereParams"`
}

type dataResponse struct {
	Data  any     `json:"data"`
	Error *string `json:"error"`
}

type errorResponse struct {
	Data    any    `json:"data"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type connectionResponse struct {
	Success bool `json:"success"`
	*transport.ConnectionInfo
}

var (
	errBadRequest    = errors.New("bad request")
	errUnknownAction = errors.New("unknown action")
)

// render turns a structured action into SQL. Where conditions are written
// with their own $1..$n and are renumbered after the data values.
func (req PostgreSQLRequest) render(touchColumn string) (string, []any, error) {
	switch req.Action {
	case ActionQuery:
		if strings.TrimSpace(req.SQL) == "" {
			return "", nil, fmt.Errorf("%w: sql is required", errBadRequest)
		}
		return req.SQL, req.Params, nil
	case ActionInsert:
		if req.Table == "" || len(req.Data) == 0 {
			return "", nil, fmt.Errorf("%w: table and data are required", errBadRequest)
		}
		return query.RenderInsert(req.Table, req.Data)
	case ActionUpdate:
		if req.Table == "" || len(req.Data) == 0 || strings.TrimSpace(req.WhereCondition) == "" {
			return "", nil, fmt.Errorf("%w: table, data and whereCondition are required", errBadRequest)
		}
		return query.RenderUpdate(req.Table, req.Data, query.Raw(req.WhereCondition, req.WhereParams...), touchColumn)
	case ActionDelete:
		if req.Table == "" || strings.TrimSpace(req.WhereCondition) == "" {
			return "", nil, fmt.Errorf("%w: table and whereCondition are required", errBadRequest)
		}
		return query.RenderDelete(req.Table, query.Raw(req.WhereCondition, req.WhereParams...))
	default:
		return "", nil, fmt.Errorf("%w: %q", errUnknownAction, req.Action)
	}
}

func errorDetails(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		parts := []string{"code " + pgErr.Code}
		if pgErr.Detail != "" {
			parts = append(parts, pgErr.Detail)
		}
		if pgErr.Hint != "" {
			parts = append(parts, "hint: "+pgErr.Hint)
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func (h *Handler) handlePostgreSQL(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req PostgreSQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("postgresql api, unmarshal request: %s", err)
		pkg.WriteJSON(w, errorResponse{Error: "invalid json body"}, http.StatusBadRequest)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "proxy.postgresql")
	defer span.End()
	span.SetAttributes(
		attribute.String("action", req.Action),
		attribute.String("table", req.Table),
	)

	log.Debugf("postgresql api request: action %s, table [%s]", req.Action, req.Table)

	if h.runner == nil {
		pkg.WriteJSON(w, errorResponse{Error: "database not configured"}, http.StatusServiceUnavailable)
		return
	}

	if req.Action == ActionTestConnection {
		info, err := h.runner.TestConnection(ctx)
		if err != nil {
			tracing.EndSpanWithErrCheck(span, err)
			log.Errorf("postgresql api, test connection: %s", err)
			pkg.WriteJSON(w, errorResponse{Error: err.Error(), Details: errorDetails(err)}, http.StatusInternalServerError)
			return
		}
		pkg.WriteJSON(w, connectionResponse{Success: true, ConnectionInfo: info}, http.StatusOK)
		return
	}

	sql, args, err := req.render(h.touchColumn)
	if err != nil {
		if errors.Is(err, errUnknownAction) {
			pkg.WriteJSON(w, map[string]string{"error": "Invalid action"}, http.StatusBadRequest)
			return
		}
		pkg.WriteJSON(w, errorResponse{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	rows, err := h.runner.Query(ctx, sql, args)
	if err != nil {
		tracing.EndSpanWithErrCheck(span, err)
		log.Errorf("postgresql api, %s: %s", req.Action, err)
		pkg.WriteJSON(w, errorResponse{Error: err.Error(), Details: errorDetails(err)}, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []query.Row{}
	}

	var data any = rows
	switch req.Action {
	case ActionInsert, ActionUpdate:
		// single-row actions answer with the row itself
		if len(rows) > 0 {
			data = rows[0]
		} else {
			data = nil
		}
	}
	pkg.WriteJSON(w, dataResponse{Data: data}, http.StatusOK)
}
