package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

// AuthPage renders the login form, or the signup form with ?mode=signup
func (h *WebHandler) AuthPage(c *gin.Context) {
	if GetSession(c).LoggedIn() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderAuth(c, http.StatusOK, c.Query("mode") == "signup", gin.H{})
}

func (h *WebHandler) renderAuth(c *gin.Context, status int, signup bool, data gin.H) {
	data["Title"] = "Login"
	if signup {
		data["Title"] = "Sign up"
	}
	data["Signup"] = signup
	h.render(c, status, "auth", data)
}

// Login handles the login form
func (h *WebHandler) Login(c *gin.Context) {
	req := domain.LoginRequest{
		Identifier: strings.TrimSpace(c.PostForm("identifier")),
		Password:   c.PostForm("password"),
	}
	form := gin.H{"Identifier": req.Identifier}

	if err := h.validator.Validate(req); err != nil {
		form["Error"] = domain.UserMessage(err)
		h.renderAuth(c, http.StatusBadRequest, false, form)
		return
	}

	res, err := h.api.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			form["Error"] = domain.UserNotFoundMessage
			form["Username"] = req.Identifier
			h.renderAuth(c, http.StatusOK, true, form)
			return
		}
		h.logger.Warn("Login failed", "error", err)
		form["Error"] = domain.FormMessage(err)
		h.renderAuth(c, http.StatusOK, false, form)
		return
	}
	if res.Token == "" {
		form["Error"] = domain.FormFailureMessage
		h.renderAuth(c, http.StatusOK, false, form)
		return
	}

	if err := GetSession(c).SetToken(res.Token); err != nil {
		h.ErrorPage(c, http.StatusInternalServerError, domain.FormFailureMessage)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Signup handles the signup form
func (h *WebHandler) Signup(c *gin.Context) {
	req := domain.SignupRequest{
		Username: strings.TrimSpace(c.PostForm("username")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	form := gin.H{"Username": req.Username, "Email": req.Email}

	if err := h.validator.Validate(req); err != nil {
		form["Error"] = domain.UserMessage(err)
		h.renderAuth(c, http.StatusBadRequest, true, form)
		return
	}

	res, err := h.api.Signup(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Signup failed", "error", err)
		form["Error"] = domain.FormMessage(err)
		h.renderAuth(c, http.StatusOK, true, form)
		return
	}

	if res.Pending() {
		msg := res.Message
		if msg == "" {
			msg = domain.VerifyEmailMessage
		}
		h.renderAuth(c, http.StatusOK, false, gin.H{"Notice": msg, "Identifier": req.Username})
		return
	}

	if err := GetSession(c).SetToken(res.Token); err != nil {
		h.ErrorPage(c, http.StatusInternalServerError, domain.FormFailureMessage)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the credential
func (h *WebHandler) Logout(c *gin.Context) {
	if err := GetSession(c).Logout(); err != nil {
		h.logger.Error("Failed to log out", "error", err)
		h.ErrorPage(c, http.StatusInternalServerError, domain.FormFailureMessage)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
