package main

import (
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/container"
	"github.com/okayr/okayr-api/internal/router"
)

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		ObjectiveHandler: c.ObjectiveContainer.Handler,
		TeamHandler:      c.TeamContainer.Handler,
		CycleHandler:     c.CycleContainer.Handler,
		CalendarHandler:  c.CalendarContainer.Handler,
		AdminHandler:     c.AdminContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(httpadapter.New(r).ProxyWithContext)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	config.Logger().WithField("port", port).Info("Starting HTTP server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		config.Logger().WithError(err).Fatal("Server stopped")
	}
}
