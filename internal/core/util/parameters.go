package util

import "github.com/gin-gonic/gin"

// ParamsToMap binds the request body JSON into the given request struct.
// Callers translate a bind error into the generic bad-parameters failure so
// malformed bodies never leak decoder internals.
func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}
