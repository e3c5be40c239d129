package google

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/meeting-fatigue/internal/config"
	"github.com/klokku/meeting-fatigue/internal/rest"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

type googleAuthRedirect struct {
	AuthUrl string `json:"authUrl"`
}

// Auth runs the OAuth2 authorization code flow. The access token is handed to
// the frontend in the redirect and is never stored here.
type Auth struct {
	oauthConfig  *oauth2.Config
	frontendUrl  string
	secureCookie bool
}

func NewAuth(cfg config.Application) *Auth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Google.RedirectUrl,
		Scopes: []string{
			gcal.CalendarReadonlyScope,
			goauth2.UserinfoEmailScope,
			goauth2.UserinfoProfileScope,
		},
	}
	return &Auth{oauthConfig: oauthConfig, frontendUrl: cfg.FrontendUrl, secureCookie: cfg.IsProduction()}
}

func (a *Auth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	log.Tracef("Generating Google auth URL with state: %s", state)
	authUrl := a.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	rest.WriteJSON(w, http.StatusOK, googleAuthRedirect{AuthUrl: authUrl})
}

func (a *Auth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	if code == "" {
		a.redirectError(w, r, "Missing authorization code")
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.FormValue("state") {
		log.Warn("OAuth callback with missing or mismatched state")
		a.redirectError(w, r, "Invalid authorization state")
		return
	}
	a.clearStateCookie(w)

	token, err := a.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		a.redirectError(w, r, "Authentication failed")
		return
	}

	log.Debug("Successfully exchanged Google authorization code")
	http.Redirect(w, r, fmt.Sprintf("%s/dashboard?token=%s", a.frontendUrl, url.QueryEscape(token.AccessToken)), http.StatusFound)
}

func (a *Auth) redirectError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, fmt.Sprintf("%s/error?message=%s", a.frontendUrl, url.QueryEscape(message)), http.StatusFound)
}

func (a *Auth) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
