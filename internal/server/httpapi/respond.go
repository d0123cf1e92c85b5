package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dkurilov/notehub/internal/server/models"
	"github.com/dkurilov/notehub/internal/server/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the {"detail": ...} error envelope.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

type userResponse struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Username       string  `json:"username"`
	IsActive       bool    `json:"is_active"`
	ProfilePicture *string `json:"profile_picture"`
	PreferredTheme *string `json:"preferred_theme"`
	PreferredFont  *string `json:"preferred_font"`
	IsOAuthUser    bool    `json:"is_oauth_user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		PreferredTheme: u.PreferredTheme,
		PreferredFont:  u.PreferredFont,
		IsOAuthUser:    u.IsOAuthUser(),
	}
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type noteResponse struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	IsArchived bool          `json:"is_archived"`
	ThemeColor *string       `json:"theme_color"`
	FontFamily *string       `json:"font_family"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
	Tags       []tagResponse `json:"tags"`
}

func toNoteResponse(n *services.NoteWithTags) noteResponse {
	tags := make([]tagResponse, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, tagResponse{ID: t.ID, Name: t.Name})
	}
	return noteResponse{
		ID:         n.Note.ID,
		UserID:     n.Note.UserID,
		Title:      n.Note.Title,
		Content:    n.Note.Content,
		IsArchived: n.Note.IsArchived,
		ThemeColor: n.Note.ThemeColor,
		FontFamily: n.Note.FontFamily,
		CreatedAt:  n.Note.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000"),
		UpdatedAt:  n.Note.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000000"),
		Tags:       tags,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
