// Package handler contains HTTP request handlers for the Shapes Calculator.
//
// Handlers parse the request body, call the CalculatorService and map its
// result or AppError to a JSON response.
//
// # Routes
//
//   - POST /circle, /rectangle, /triangle - calculations
//   - GET /health, /livez, /readyz, /version - probes
//   - GET /, /circle-page, /rectangle-page, /triangle-page, /static/* - frontend
//   - GET /openapi.yaml, /openapi.json, /docs - API documentation
//
// # Error Handling
//
// Every error body has a "detail" field. AppErrors add "code" and "fields".
package handler
