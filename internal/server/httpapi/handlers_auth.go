package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email, username and password are required")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailRegistered):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, common.ErrorConflict):
			writeError(w, http.StatusBadRequest, "Email or username already registered")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleToken is the password grant endpoint: form-encoded, the username
// field may carry either the username or the email.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	identifier := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, token, err := s.users.Login(r.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect username/email or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(currentUser(r)))
}

// googleVerifyRequest tolerates the token-field spellings the NextAuth
// client has shipped over time.
type googleVerifyRequest struct {
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken"`
	AccessToken2 string `json:"access_token"`
}

func (g *googleVerifyRequest) providerToken() string {
	switch {
	case g.Token != "":
		return g.Token
	case g.AccessToken != "":
		return g.AccessToken
	default:
		return g.AccessToken2
	}
}

func (s *Server) handleGoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token := req.providerToken()
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}

	user, accessToken, err := s.identity.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrExternalAuth) {
			writeError(w, http.StatusUnauthorized, "Invalid Google token")
			return
		}
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	picture := ""
	if user.ProfilePicture != nil {
		picture = *user.ProfilePicture
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":          strconv.FormatInt(user.ID, 10),
		"name":        user.Username,
		"email":       user.Email,
		"picture":     picture,
		"accessToken": accessToken,
	})
}

type nextAuthCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleNextAuthCredentials is the NextAuth credentials-provider shim. Per
// the shim's contract every failure, including a bad password, surfaces as
// the same masked 500 so the frontend treats them uniformly.
func (s *Server) handleNextAuthCredentials(w http.ResponseWriter, r *http.Request) {
	var req nextAuthCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Error(r.Context(), "nextauth credentials callback failed", "error", err.Error())
		}
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":          strconv.FormatInt(user.ID, 10),
		"name":        user.Username,
		"email":       user.Email,
		"accessToken": token,
	})
}
