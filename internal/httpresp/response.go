package httpresp

import "github.com/gin-gonic/gin"

type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Items[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(200, ItemsResponse[T]{Items: items})
}
