package utils

import "github.com/gin-gonic/gin"

// JSONResponse defines the uniform structure for API responses: a human
// readable message plus the payload, which marshals to null when absent.
type JSONResponse struct {
	Message string      `json:"message"`
	Results interface{} `json:"results"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, message string, results interface{}) {
	ctx.JSON(status, JSONResponse{
		Message: message,
		Results: results,
	})
}

// RespondWithToken writes a response that additionally carries a freshly
// issued access token, used by signup and login.
func RespondWithToken(ctx *gin.Context, status int, message string, results interface{}, token string) {
	ctx.JSON(status, gin.H{
		"message":      message,
		"results":      results,
		"access_token": token,
	})
}

// Error returns an error response with a null results field.
func Error(ctx *gin.Context, status int, message string) {
	Respond(ctx, status, message, nil)
}
