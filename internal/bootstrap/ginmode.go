package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ConfigureGin sets the mode and makes JSON binding reject unknown fields.
func ConfigureGin(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	binding.EnableDecoderDisallowUnknownFields = true
}
