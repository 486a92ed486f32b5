package server

import (
	"context"
	"log/slog"
	"net/http"
	"recipe-pack-payments/internal/handler"
	"recipe-pack-payments/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	paymentHandler  *handler.PaymentHandler
	purchaseHandler *handler.PurchaseHandler
}

func NewServer(log *slog.Logger, paymentService service.PaymentService, purchaseService service.PurchaseService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			log.LogAttrs(context.Background(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		paymentHandler:  handler.NewPaymentHandler(paymentService),
		purchaseHandler: handler.NewPurchaseHandler(purchaseService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	s.echo.POST("/create-payment", s.paymentHandler.CreatePayment)
	s.echo.POST("/webhook", s.paymentHandler.Webhook, middleware.BodyLimit("1M"))

	s.echo.GET("/check/:userPackKey", s.purchaseHandler.Check)
	s.echo.GET("/my-packs/:userId", s.purchaseHandler.MyPacks)

	// -------- checkout back urls --------
	s.echo.GET("/success", s.paymentHandler.Landing("success"))
	s.echo.GET("/failure", s.paymentHandler.Landing("failure"))
	s.echo.GET("/pending", s.paymentHandler.Landing("pending"))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
