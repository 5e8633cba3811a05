package controller

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/api/internal/domain/entity"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/middleware"
)

// pathID reads a numeric path parameter. Ids that match no record are left to the use cases.
func pathID(ctx *gin.Context, name string) (int64, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, middleware.NewMalformedRequestError(
			fmt.Sprintf("Parâmetro '%s' inválido: %s", name, raw), nil)
	}
	return id, nil
}

// pathKind reads a transaction kind path parameter; the match is case-sensitive.
func pathKind(ctx *gin.Context, name string) (entity.TransactionKind, error) {
	kind, err := entity.ParseTransactionKind(ctx.Param(name))
	if err != nil {
		return "", middleware.NewMalformedRequestError(
			fmt.Sprintf("Parâmetro '%s' inválido", name), err)
	}
	return kind, nil
}

// requiredQuery reads a query parameter that must be present; an empty value is accepted.
func requiredQuery(ctx *gin.Context, name string) (string, error) {
	value, ok := ctx.GetQuery(name)
	if !ok {
		return "", middleware.NewMalformedRequestError(
			fmt.Sprintf("Parâmetro obrigatório '%s' ausente", name), nil)
	}
	return value, nil
}

// queryDate reads a required YYYY-MM-DD query parameter.
func queryDate(ctx *gin.Context, name string) (time.Time, error) {
	raw, err := requiredQuery(ctx, name)
	if err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		return time.Time{}, middleware.NewMalformedRequestError(
			fmt.Sprintf("Parâmetro '%s' deve estar no formato %s", name, entity.DateLayout), nil)
	}
	return date, nil
}

// queryPeriod reads the dataInicio/dataFim window.
func queryPeriod(ctx *gin.Context) (time.Time, time.Time, error) {
	from, err := queryDate(ctx, "dataInicio")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryDate(ctx, "dataFim")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// optionalText maps blank optional text to nil.
func optionalText(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}
