package v1

import (
	"net/http"

	"link1t-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const assetCacheControl = "public, max-age=31536000, immutable"

type AssetHandler struct {
	assetUC domain.AssetUsecase
}

// NewAssetHandler registers the asset proxy on the root engine
func NewAssetHandler(r gin.IRoutes, assetUC domain.AssetUsecase) {
	handler := &AssetHandler{assetUC: assetUC}

	r.GET("/asset-proxy/*key", handler.Proxy)
}

// Proxy godoc
// @Summary      Serve a stored asset
// @Description  Streams the object stored under key. Responses are cached for a year.
// @Tags         assets
// @Produce      octet-stream
// @Param        key  path  string  true  "Storage key"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.ErrorBody
// @Router       /asset-proxy/{key} [get]
func (h *AssetHandler) Proxy(c *gin.Context) {
	obj, err := h.assetUC.Fetch(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.Error(err)
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
		"Cache-Control": assetCacheControl,
	})
}
