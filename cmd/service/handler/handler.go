package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sproutplan/sproutplan/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}

const defaultPageSize = 20

func normalizePagination(page, pageSize uint64) (uint64, uint64) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}
