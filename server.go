package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/config"
	"github.com/harshit0019/portfolio/internal/content"
)

//go:embed web/templates/*.html web/static/*
var webFS embed.FS

type server struct {
	cfg      *config.Config
	site     *content.Site
	mailer   Mailer
	throttle *throttle
	streams  *streamLimit
}

func newServer(cfg *config.Config, site *content.Site, mailer Mailer) *server {
	th := newThrottle(cfg.ContactLimit, cfg.ContactWindow)
	return &server{
		cfg:      cfg,
		site:     site,
		mailer:   mailer,
		throttle: th,
		streams:  newStreamLimit(cfg.StreamLimit, cfg.StreamPerClient, th.hashIP),
	}
}

func (s *server) router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/templates/*.html")))

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		log.Fatalf("static assets: %v", err)
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/files", s.cfg.FilesDir)

	// Home page route
	r.GET("/", s.index)

	// HTMX fragments
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"jobs": s.site.Experience,
		})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"education":      s.site.Education,
			"certifications": s.site.Certifications,
		})
	})

	r.POST("/contact", s.throttle.middleware(denyFragment), s.contactForm)
	r.POST("/api/contact", s.throttle.middleware(denyJSON), s.contactAPI)

	r.GET("/backdrop/:mode", s.poster)
	r.GET("/backdrop/:mode/stream", s.streams.middleware(), s.stream)

	return r
}

func (s *server) index(c *gin.Context) {
	mode, err := backdrop.ParseMode(c.Query("backdrop"))
	if err != nil {
		mode = backdrop.Both
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":   s.site,
		"mode":   mode,
		"modes":  backdrop.Modes,
		"layers": mode.Layers(),
	})
}

// contactForm handles the HTMX form and answers with a fragment either way.
func (s *server) contactForm(c *gin.Context) {
	var msg ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		contactError(c, "Name, email, and message are required.")
		return
	}
	if !msg.ValidEmail() {
		contactError(c, "Please enter a valid email address.")
		return
	}
	s.throttle.record(c.ClientIP())

	if err := s.mailer.Send(msg); err != nil {
		contactError(c, "Sorry, there was an error sending your message. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (s *server) contactAPI(c *gin.Context) {
	var msg ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and message are required"})
		return
	}
	if !msg.ValidEmail() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}
	s.throttle.record(c.ClientIP())

	if err := s.mailer.Send(msg); err != nil {
		log.Printf("Contact form error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error, please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent! I will get back to you soon.",
		"success": true,
	})
}

func contactError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "contact-error.html", gin.H{
		"error": msg,
	})
}

func denyFragment(c *gin.Context) {
	contactError(c, "You have sent several messages already. Please try again later.")
}
