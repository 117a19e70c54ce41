package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"arkive/models"
	"arkive/utils"
)

// getOwnerID reads the authenticated owner id set by the auth middleware.
func getOwnerID(c *gin.Context) (string, error) {
	ownerID := c.GetString("ownerId")
	if ownerID == "" {
		return "", fmt.Errorf("user not authenticated")
	}
	return ownerID, nil
}

// ownerMatches enforces that an explicit ownerId sent by the client agrees
// with the token identity. An absent value passes; a mismatch is treated as
// an authorization failure, not a validation one.
func ownerMatches(c *gin.Context, ownerID, claimed string) bool {
	if claimed != "" && claimed != ownerID {
		utils.UnauthorizedResponse(c, "Owner mismatch")
		return false
	}
	return true
}

// handleServiceError maps service-layer sentinels onto HTTP statuses with a
// constant action-scoped message. Details go to the log, not the client.
func handleServiceError(c *gin.Context, err error, action string) {
	utils.Log.Error().Err(err).Str("action", action).Msg("request failed")

	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, action+": not found")
	case errors.Is(err, models.ErrValidation):
		utils.BadRequestResponse(c, action+": invalid request")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, action+" failed")
	}
}

// bodyOwnerMatches checks a declared ownerId inside a raw-decoded JSON body
// against the token identity. A mismatch is rejected, never silently
// corrected.
func bodyOwnerMatches(c *gin.Context, ownerID string, raw map[string]json.RawMessage) bool {
	rawOwner, ok := raw["ownerId"]
	if !ok {
		return true
	}
	var claimed string
	if err := json.Unmarshal(rawOwner, &claimed); err != nil {
		utils.BadRequestResponse(c, "Invalid owner ID")
		return false
	}
	return ownerMatches(c, ownerID, claimed)
}

// optionalString returns nil for an empty query value so handlers can pass
// it straight through as an optional parent id.
func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
