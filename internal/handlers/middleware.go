package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"settingshub/internal/gateway"
	"settingshub/internal/models"
	"settingshub/internal/service"

	"github.com/gin-gonic/gin"
)

// tokenQueryParam is the one-time token delivery surface: the login
// origin redirects back with ?token=<jwt> appended.
const tokenQueryParam = "token"

// Gin context keys set by the session gate.
const (
	ctxSessionID = "sessionID"
	ctxToken     = "token"
	ctxIdentity  = "identity"
)

// sessionGate resolves the caller's session before any handler runs.
//
// A token arriving as a URL parameter wins over a stored one: it is
// persisted, bound to a fresh cookie, and stripped from the visible URL
// by redirect so it cannot leak through history or referrers. Otherwise
// the session cookie is resolved against the store. With neither, the
// request is unauthenticated and no upstream call is attempted.
func (h *Handler) sessionGate(c *gin.Context) {
	if tok := c.Query(tokenQueryParam); tok != "" {
		sess, err := h.services.Sessions.Establish(c.Request.Context(), tok)
		if err != nil {
			if h.log != nil {
				h.log.Errorw("session_establish_failed", "err", err)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to store session"})
			return
		}
		h.setSessionCookie(c, sess.ID)
		c.Redirect(http.StatusFound, strippedURL(c.Request.URL))
		c.Abort()
		return
	}

	id, err := c.Cookie(h.opts.CookieName)
	if err != nil || id == "" {
		h.unauthenticated(c)
		return
	}

	sess, err := h.services.Sessions.Resolve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			h.expireSessionCookie(c)
			h.unauthenticated(c)
			return
		}
		if h.log != nil {
			h.log.Errorw("session_resolve_failed", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
		return
	}

	ident, ok := h.services.Sessions.Identity(sess.Token)
	if !ok {
		// Stored token is not decodable; drop it.
		_ = h.services.Sessions.Clear(c.Request.Context(), sess.ID)
		h.expireSessionCookie(c)
		h.unauthenticated(c)
		return
	}

	c.Set(ctxSessionID, sess.ID)
	c.Set(ctxToken, sess.Token)
	c.Set(ctxIdentity, ident)
	c.Next()
}

func (h *Handler) unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     "not authenticated",
		"login_url": h.opts.LoginURL,
	})
}

// forceLogout tears the session down after the remote API rejected the
// token: the stored token is gone and the browser is pointed back at
// the login origin. This is the only error with a global side effect.
func (h *Handler) forceLogout(c *gin.Context) {
	if id, ok := c.Get(ctxSessionID); ok {
		if err := h.services.Sessions.Clear(c.Request.Context(), id.(string)); err != nil && h.log != nil {
			h.log.Errorw("session_clear_failed", "err", err)
		}
	}
	h.expireSessionCookie(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     "session expired",
		"login_url": h.opts.LoginURL,
	})
}

// writeServiceError maps service failures onto HTTP responses. Local
// validation stays 400 and never reaches the network; remote failures
// surface the server message when present; an upstream authorization
// failure forces logout.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, gateway.ErrUnauthorized) {
		h.forceLogout(c)
		return
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "reason": verr.Reason})
		return
	}

	switch {
	case errors.Is(err, service.ErrCreatorImmutable), errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var rerr *service.RemoteError
	if errors.As(err, &rerr) {
		if h.log != nil {
			h.log.Infow("remote_call_failed", "kind", rerr.Kind, "err", rerr.Err)
		}
		c.JSON(rerr.Status(), gin.H{"error": rerr.Message()})
		return
	}

	if h.log != nil {
		h.log.Errorw("unhandled_service_error", "err", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (h *Handler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, sessionID, int(h.opts.CookieTTL.Seconds()), "/", "", h.opts.SecureCookie, true)
}

func (h *Handler) expireSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.SecureCookie, true)
}

// strippedURL rebuilds the request URL without the token parameter.
func strippedURL(u *url.URL) string {
	q := u.Query()
	q.Del(tokenQueryParam)
	out := u.Path
	if out == "" {
		out = "/"
	}
	if enc := q.Encode(); enc != "" {
		out += "?" + enc
	}
	return out
}

// Context accessors for gated handlers.

func sessionToken(c *gin.Context) string {
	v, _ := c.Get(ctxToken)
	tok, _ := v.(string)
	return tok
}

func callerIdentity(c *gin.Context) models.Identity {
	v, _ := c.Get(ctxIdentity)
	ident, _ := v.(models.Identity)
	return ident
}
