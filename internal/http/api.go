package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sample-registry/internal/domain"
	"sample-registry/internal/httperr"
	"sample-registry/internal/repository"
	"sample-registry/internal/service"
	"sample-registry/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	samples   service.SampleService
	storage   storage.Service
	logger    *logrus.Logger
	staticDir string
	keyPrefix string
	devMode   bool
}

func NewHandler(users service.UserService, samples service.SampleService, store storage.Service, logger *logrus.Logger, staticDir, keyPrefix string, devMode bool) *Handler {
	return &Handler{
		users:     users,
		samples:   samples,
		storage:   store,
		logger:    logger,
		staticDir: staticDir,
		keyPrefix: keyPrefix,
		devMode:   devMode,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/user", h.listUsers)
	router.GET("/user/:email", h.getUserByEmail)
	router.GET("/user/rol/:rol", h.listUsersByRol)
	router.POST("/user", h.createUser)
	router.DELETE("/user/:id", h.deleteUser)

	router.POST("/muestra", h.createSample)
	router.GET("/muestra", h.listSamples)
	router.DELETE("/muestra/:id", h.deleteSample)
	router.POST("/muestra/imagen", h.uploadSampleImage)

	router.GET("/", h.root)
	router.NoRoute(h.serveStatic)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
		}).Info("request")
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserSummaryResponse, len(users))
	for i := range users {
		resp[i] = userToSummary(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUserByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Usuario no encontrado"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToFull(*user))
}

func (h *Handler) listUsersByRol(c *gin.Context) {
	rol := c.Param("rol")

	users, err := h.users.ListByRol(c.Request.Context(), rol)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No se encontraron usuarios con ese rol"})
			return
		}
		h.respondError(c, err)
		return
	}

	resp := make([]UserFullResponse, len(users))
	for i := range users {
		resp[i] = userToFull(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var input service.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	if _, err := h.users.Create(c.Request.Context(), input); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario creado correctamente"})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Identificador inválido"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Usuario no encontrado"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado correctamente"})
}

func (h *Handler) createSample(c *gin.Context) {
	var input service.CreateSampleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	if _, err := h.samples.Create(c.Request.Context(), input); err != nil {
		h.respondError(c, err)
		return
	}

	// the double space matches what the web client asserts on
	c.JSON(http.StatusOK, gin.H{"message": "Muestra  creada correctamente"})
}

func (h *Handler) listSamples(c *gin.Context) {
	samples, err := h.samples.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]SampleResponse, len(samples))
	for i := range samples {
		resp[i] = sampleToResponse(samples[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteSample(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Identificador inválido"})
		return
	}

	if err := h.samples.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Muestra no encontrada"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Muestra eliminada correctamente"})
}

func (h *Handler) uploadSampleImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Almacenamiento de imágenes no configurado"})
		return
	}

	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El campo 'imagen' es requerido"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	key := fmt.Sprintf("%s/%s%s", strings.Trim(h.keyPrefix, "/"), uuid.NewString(), ext)

	url, err := h.storage.Upload(c.Request.Context(), key, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(c, fmt.Errorf("upload image: %w", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// root serves the default document, or the endpoint map in development.
func (h *Handler) root(c *gin.Context) {
	if h.devMode {
		c.JSON(http.StatusOK, gin.H{"endpoints": endpointMap()})
		return
	}
	h.serveFile(c, "index.html")
}

// serveStatic resolves unmatched GET paths against the public directory,
// falling back to the default document so client-side routing works.
func (h *Handler) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recurso no encontrado"})
		return
	}

	rel := strings.TrimPrefix(filepath.Clean("/"+c.Request.URL.Path), "/")
	if fi, err := os.Stat(filepath.Join(h.staticDir, rel)); err != nil || fi.IsDir() {
		rel = "index.html"
	}
	h.serveFile(c, rel)
}

func (h *Handler) serveFile(c *gin.Context, rel string) {
	c.Header("Cache-Control", "max-age=0")
	c.File(filepath.Join(h.staticDir, rel))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var apiErr *httperr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"message": apiErr.Message})
		return
	}

	h.logger.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno del servidor"})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func endpointMap() []gin.H {
	return []gin.H{
		{"method": "GET", "path": "/user"},
		{"method": "GET", "path": "/user/{email}"},
		{"method": "GET", "path": "/user/rol/{rol}"},
		{"method": "POST", "path": "/user"},
		{"method": "DELETE", "path": "/user/{id}"},
		{"method": "POST", "path": "/muestra"},
		{"method": "GET", "path": "/muestra"},
		{"method": "DELETE", "path": "/muestra/{id}"},
		{"method": "POST", "path": "/muestra/imagen"},
	}
}

// UserSummaryResponse is the list view of a user. It never carries the
// password column.
type UserSummaryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Rut      string `json:"rut"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

// UserFullResponse is the complete serialized form, password included.
type UserFullResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Rut      string `json:"rut"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Password string `json:"password"`
}

type SampleResponse struct {
	ID                int64  `json:"id"`
	ProjectName       string `json:"project_name"`
	Ubication         string `json:"ubication"`
	UbicationImage    string `json:"ubication_image"`
	Area              string `json:"area"`
	Specimen          string `json:"specimen"`
	QualitySpecimen   string `json:"quality_specimen"`
	ImageSpecimen     string `json:"image_specimen"`
	AditionalComments string `json:"aditional_comments"`
}

func userToSummary(user domain.User) UserSummaryResponse {
	return UserSummaryResponse{
		ID:       user.ID,
		Name:     user.Name,
		LastName: user.LastName,
		Rut:      user.Rut,
		Email:    user.Email,
		Rol:      user.Rol,
	}
}

func userToFull(user domain.User) UserFullResponse {
	return UserFullResponse{
		ID:       user.ID,
		Name:     user.Name,
		LastName: user.LastName,
		Rut:      user.Rut,
		Email:    user.Email,
		Rol:      user.Rol,
		Password: user.PasswordHash,
	}
}

func sampleToResponse(sample domain.Sample) SampleResponse {
	return SampleResponse{
		ID:                sample.ID,
		ProjectName:       sample.ProjectName,
		Ubication:         sample.Ubication,
		UbicationImage:    sample.UbicationImage,
		Area:              sample.Area,
		Specimen:          sample.Specimen,
		QualitySpecimen:   sample.QualitySpecimen,
		ImageSpecimen:     sample.ImageSpecimen,
		AditionalComments: sample.AditionalComments,
	}
}
