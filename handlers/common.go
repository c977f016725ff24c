// Package handlers exposes the REST surface of the fiscal backend. Handlers
// bind and normalize requests, delegate to the services and wrap every
// response in the {success, data|message, timestamp} envelope.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/types/api/responses"
)

// sendSuccess writes a successful envelope.
func sendSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, responses.Success(data))
}

// sendFailure writes a failed envelope with an explicit status.
func sendFailure(c *gin.Context, status int, message string) {
	c.JSON(status, responses.Failure(message))
}

// sendError maps a service error onto the envelope through the error
// taxonomy: validation and precondition failures are 400, unresolved
// references 404, conflicts 409.
func sendError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), responses.Failure(err.Error()))
}

// idParam reads a numeric path parameter. An unparseable id yields zero,
// which never resolves, so lookups fail the same way an unknown id does.
func idParam(c *gin.Context, name string) int64 {
	id, _ := strconv.ParseInt(c.Param(name), 10, 64)
	return id
}

// int64Query reads a numeric query parameter, zero when absent or invalid.
func int64Query(c *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.Query(name), 10, 64)
	return v
}

// intQuery reads a numeric query parameter, zero when absent or invalid.
func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

// bindObject binds the request body as a loose JSON object so declared
// fields outside the core schema survive into the extension map.
func bindObject(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		sendFailure(c, http.StatusBadRequest, "Corps de requête JSON invalide")
		return nil, false
	}
	return body, true
}

// stringField reads a string field out of a loose body.
func stringField(body map[string]any, key string) string {
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}

// int64Field reads a numeric field that may arrive as a JSON number or a
// numeric string.
func int64Field(body map[string]any, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// intField reads a numeric field like int64Field.
func intField(body map[string]any, key string) int {
	return int(int64Field(body, key))
}

// stringPtrField reads an optional string field, nil when absent.
func stringPtrField(body map[string]any, key string) *string {
	if v, ok := body[key].(string); ok {
		return &v
	}
	return nil
}

// int64PtrField reads an optional numeric field, nil when absent.
func int64PtrField(body map[string]any, key string) *int64 {
	if _, ok := body[key]; !ok {
		return nil
	}
	v := int64Field(body, key)
	return &v
}

// intPtrField reads an optional numeric field, nil when absent.
func intPtrField(body map[string]any, key string) *int {
	if _, ok := body[key]; !ok {
		return nil
	}
	v := intField(body, key)
	return &v
}

// extraFields collects the body's remaining fields after the consumed keys,
// nil when nothing is left.
func extraFields(body map[string]any, consumed ...string) map[string]any {
	skip := make(map[string]bool, len(consumed))
	for _, key := range consumed {
		skip[key] = true
	}

	var extra map[string]any
	for key, value := range body {
		if skip[key] {
			continue
		}
		if extra == nil {
			extra = map[string]any{}
		}
		extra[key] = value
	}
	return extra
}
