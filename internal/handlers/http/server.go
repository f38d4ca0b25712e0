package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/behummble/link-alive/internal/config"
	"github.com/behummble/link-alive/internal/logger"
	"github.com/behummble/link-alive/internal/models"
	"github.com/behummble/link-alive/internal/service"
)

const methodNotAllowed = "Method not allowed!"

type Server struct {
	log     *zap.Logger
	server  *http.Server
	service Service
}

type Service interface {
	VerifyLinks(ctx context.Context, data []byte) (models.BatchResponse, error)
	LinksReport(ctx context.Context, data []byte) ([]byte, error)
}

func NewServer(log *zap.Logger, cfg config.ServerConfig, service Service) *Server {
	server := &Server{
		log:     log,
		service: service,
	}
	server.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: newRouter(server),
	}

	return server
}

// Start blocks until the server stops.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

func (s *Server) VerifyLinks(writer http.ResponseWriter, request *http.Request) {
	data, err := executeRequestBody(request, s.log)
	if err != nil {
		writeText(writer, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Debug("Received request to verify links")

	res, err := s.service.VerifyLinks(request.Context(), data)
	if err != nil {
		writeText(writer, statusFor(err), err.Error())
		return
	}

	bytes, err := json.Marshal(res)
	if err != nil {
		s.log.Error(
			"MarshalingJSONError",
			zap.String("component", "json/marshalling"),
			zap.Error(err),
		)
		writeText(writer, http.StatusInternalServerError, err.Error())
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(bytes)
}

func (s *Server) LinksReport(writer http.ResponseWriter, request *http.Request) {
	data, err := executeRequestBody(request, s.log)
	if err != nil {
		writeText(writer, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Debug("Received request for links report")

	res, err := s.service.LinksReport(request.Context(), data)
	if err != nil {
		writeText(writer, statusFor(err), err.Error())
		return
	}
	writer.Header().Set("Content-Type", "application/pdf")
	writer.WriteHeader(http.StatusOK)
	writer.Write(res)
}

func newRouter(s *Server) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(logger.Middleware(s.log))

	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		writeText(writer, http.StatusMethodNotAllowed, methodNotAllowed)
	})

	router.Post("/links", s.VerifyLinks)
	router.Post("/links/report", s.LinksReport)

	return router
}

// statusFor maps service errors to response codes. A body that is not JSON
// is answered with 500, not 400; existing clients rely on it.
func statusFor(err error) int {
	if errors.Is(err, service.ErrNoURLs) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeText(writer http.ResponseWriter, status int, text string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(status)
	fmt.Fprint(writer, text)
}

func executeRequestBody(request *http.Request, log *zap.Logger) ([]byte, error) {
	if request.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(request.Body)
	if err != nil {
		log.Error(
			"ReadingRequestBodyError",
			zap.String("component", "io/Read"),
			zap.Error(err),
		)
		return nil, errors.New("ReadingRequestBodyError")
	}

	return data, nil
}
