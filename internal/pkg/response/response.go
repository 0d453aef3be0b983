// Package response writes the JSON bodies the frontend expects:
// resources are returned flat, failures as {"error": "..."} (the
// reservation creation endpoint uses {"message": "..."}).
package response

import "github.com/gin-gonic/gin"

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}
