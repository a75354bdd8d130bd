package core

import (
	"encoding/json"
	"net/http"

	"github.com/joblane/backend/db"
)

// CodeOkStats is the success code for the admin stats response.
const CodeOkStats = "ok_stats"

// StatsData is the payload of the admin stats endpoint.
type StatsData struct {
	Users int `json:"users"`
}

// AdminStatsHandler reports aggregate user counts.
// Endpoint: GET /admin/stats
// Authenticated: Yes (admin)
func (a *App) AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	count, err := a.DbAuth().CountUsers()
	if err != nil {
		a.Logger().Error("user count failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkStats,
			Message: "Stats retrieved",
		},
		Data: StatsData{Users: count},
	})
}

// AdminUpdateRoleHandler changes a user's role.
// Endpoint: POST /admin/users/role
// Authenticated: Yes (admin)
// Allowed Mimetype: application/json
func (a *App) AdminUpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.UserID == "" || req.Role == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	role := db.Role(req.Role)
	if !role.Valid() {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserById(req.UserID)
	if err != nil {
		a.Logger().Error("user lookup failed", "user_id", req.UserID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil {
		writeJsonError(w, errorNotFound)
		return
	}

	if err := a.DbAuth().UpdateRole(req.UserID, role); err != nil {
		a.Logger().Error("role update failed", "user_id", req.UserID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.Logger().Info("role updated", "user_id", req.UserID, "role", req.Role)
	writeJsonOk(w, okRoleUpdated)
}
