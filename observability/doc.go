// Package observability provides OpenTelemetry tracing and metrics
// integration for restkit clients.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	client, err := httpclient.New(cfg, httpclient.WithTracing())
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	client, err := httpclient.New(cfg, httpclient.WithMetrics(metrics))
package observability
