package main

import (
	"log"

	"coverly-api-io/api/internal/container"
	"coverly-api-io/api/internal/routers"
	"coverly-api-io/api/pkg/util"
)

func main() {
	db := util.ConnectDB()
	rdb := util.ConnectRedis()

	sc := container.NewServiceContainer(db, rdb)

	router := routers.InitRoute(sc)
	err := router.Run("0.0.0.0:8080")
	if err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
