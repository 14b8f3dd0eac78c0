package main

import (
	"context"

	"github.com/denizbek-commits/stat-arb-preferreds/api"
	"github.com/denizbek-commits/stat-arb-preferreds/cmd"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"go.uber.org/zap"
)

type lambdaHandler struct {
	ginLambda *ginadapter.GinLambda
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	zap.S().Infow("lambda request", "method", req.HTTPMethod, "path", req.Path, "requestID", req.RequestContext.RequestID)
	return m.ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	log := zap.S()
	cfg, err := util.LoadConfig(util.DefaultConfigPath())
	if err != nil {
		log.Fatal(err)
	}
	pairScanHandler, err := cmd.InitializeDependencies(*cfg, false)
	if err != nil {
		log.Fatal(err)
	}

	apiHandler := api.ApiHandler{
		PairScanHandler: *pairScanHandler,
	}
	handler := lambdaHandler{
		ginLambda: ginadapter.New(apiHandler.InitializeRouterEngine()),
	}
	lambda.Start(handler.Handler)
}
