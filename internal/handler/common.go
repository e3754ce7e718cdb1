package handler

import (
	"net/http"

	"eventbooking/internal/middleware"
	"eventbooking/internal/model"

	"github.com/gin-gonic/gin"
)

// principalFrom / memberFrom 轉發中介層的 context 取值
func principalFrom(c *gin.Context) (model.Principal, bool) {
	return middleware.PrincipalFrom(c)
}

func memberFrom(c *gin.Context) (*model.Member, bool) {
	return middleware.MemberFrom(c)
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}
