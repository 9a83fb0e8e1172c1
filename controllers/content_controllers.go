package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rizfc/restaurant-site/content"
	"github.com/rizfc/restaurant-site/utils"
)

type ContentController struct {
	Content *content.Content
}

func NewContentController(c *content.Content) *ContentController {
	return &ContentController{Content: c}
}

// GetContent -> GET /api/content
func (cc *ContentController) GetContent(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Site content", cc.Content)
}
