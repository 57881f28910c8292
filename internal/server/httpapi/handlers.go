package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.accessValidity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterUserRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(r.Context(), w, "register", err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "request_id", requestID(r.Context()), "user_id", user.ID)
	writeJSON(w, http.StatusCreated, api.ProfileFromModel(user))
}

func (s *Server) writeSession(w http.ResponseWriter, session *services.Session) {
	s.setSessionCookie(w, session.AccessToken)
	writeJSON(w, http.StatusOK, &api.Session{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		UserID:       session.UserID,
		Theme:        string(session.Theme),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := s.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, "login", err)
		return
	}
	s.writeSession(w, session)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshTokenRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := s.accounts.RefreshSession(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(r.Context(), w, "refresh", err)
		return
	}
	s.writeSession(w, session)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var req api.LogoutRequest
	if !decode(w, r, &req) {
		return
	}

	if err := s.accounts.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(r.Context(), w, "logout", err)
		return
	}
	clearSessionCookie(w)
	writeSuccess(w)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.GetProfile(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, api.ProfileFromModel(user))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == models.Anonymous {
		s.writeError(r.Context(), w, "update profile", common.ErrorUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	if err := s.accounts.UpdateProfile(r.Context(), userID, req.Changes()); err != nil {
		s.writeError(r.Context(), w, "update profile", err)
		return
	}

	user, err := s.accounts.GetProfile(r.Context(), userID)
	if err != nil {
		s.writeError(r.Context(), w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, api.ProfileFromModel(user))
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.accounts.GetTheme(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, "get theme", err)
		return
	}
	writeJSON(w, http.StatusOK, &api.ThemeResponse{Theme: string(theme)})
}

// changeTheme also replaces the session cookie so the theme claim follows.
func (s *Server) changeTheme(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == models.Anonymous {
		s.writeError(r.Context(), w, "change theme", common.ErrorUnauthorized)
		return
	}

	var req api.ChangeThemeRequest
	if !decode(w, r, &req) {
		return
	}

	token, err := s.accounts.ChangeTheme(r.Context(), userID, models.Theme(req.Theme))
	if err != nil {
		s.writeError(r.Context(), w, "change theme", err)
		return
	}
	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, &api.ChangeThemeResponse{Theme: req.Theme, AccessToken: token})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == models.Anonymous {
		s.writeError(r.Context(), w, "change password", common.ErrorUnauthorized)
		return
	}

	var req api.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := s.accounts.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(r.Context(), w, "change password", err)
		return
	}
	writeSuccess(w)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	if err := s.accounts.DeleteAccount(r.Context(), userID); err != nil {
		s.writeError(r.Context(), w, "delete account", err)
		return
	}

	s.logger.Info(r.Context(), "Account deleted", "request_id", requestID(r.Context()), "user_id", userID)
	clearSessionCookie(w)
	writeSuccess(w)
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == models.Anonymous {
		s.writeError(r.Context(), w, "add task", common.ErrorUnauthorized)
		return
	}

	var req api.AddTaskRequest
	if !decode(w, r, &req) {
		return
	}

	task, err := s.tasks.AddTask(r.Context(), userID, req.Task, req.DueDate)
	if err != nil {
		s.writeError(r.Context(), w, "add task", err)
		return
	}
	writeJSON(w, http.StatusCreated, api.TaskFromModel(task))
}

// taskID parses the {id} path segment; non-numeric ids are invalid input.
func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, common.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.writeError(r.Context(), w, "complete task", err)
		return
	}

	task, err := s.tasks.CompleteTask(r.Context(), auth.UserIDFromContext(r.Context()), id)
	if err != nil {
		s.writeError(r.Context(), w, "complete task", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TaskFromModel(task))
}

func (s *Server) reopenTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.writeError(r.Context(), w, "reopen task", err)
		return
	}

	task, err := s.tasks.ReopenTask(r.Context(), auth.UserIDFromContext(r.Context()), id)
	if err != nil {
		s.writeError(r.Context(), w, "reopen task", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TaskFromModel(task))
}

func (s *Server) listInbox(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListInbox(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, "list inbox", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TaskListFromModels(tasks))
}

// listToday uses ?date=YYYY-MM-DD, defaulting to the server's local date.
func (s *Server) listToday(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.now().Format(services.DateLayout)
	}

	tasks, err := s.tasks.ListToday(r.Context(), auth.UserIDFromContext(r.Context()), date)
	if err != nil {
		s.writeError(r.Context(), w, "list today", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TaskListFromModels(tasks))
}

func (s *Server) listCompleted(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListCompleted(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, "list completed", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TaskListFromModels(tasks))
}
