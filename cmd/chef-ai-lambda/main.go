// Package main запускает те же маршруты функций как AWS Lambda за API Gateway.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/magabrotheeeer/chef-ai/internal/app/chefai"
	"github.com/magabrotheeeer/chef-ai/internal/config"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
)

var adapter *httpadapter.HandlerAdapter

// init выполняется один раз на холодный старт контейнера.
func init() {
	cfg := config.MustLoad()
	logger := sl.NewLogger(cfg.Env, os.Stdout)
	logger.Info("starting chef-ai lambda", slog.String("env", cfg.Env))

	app, err := chefai.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}
	adapter = httpadapter.New(app.Handler())
}

// Handler точка входа Lambda для прокси-интеграции API Gateway.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
