package server

import (
	"outfit-agent-demo/internal/client"
	"outfit-agent-demo/internal/handler"
	authmw "outfit-agent-demo/internal/middleware"
	"outfit-agent-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	catalogHandler  *handler.CatalogHandler
	wardrobeHandler *handler.WardrobeHandler
	outfitHandler   *handler.OutfitHandler
	purchaseHandler *handler.PurchaseHandler
}

func NewServer(
	catalogClient client.CatalogClient,
	wardrobeService service.WardrobeService,
	outfitService service.OutfitService,
	purchaseService service.PurchaseService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(authmw.AuthMiddleware())

	s := &Server{
		echo:            e,
		catalogHandler:  handler.NewCatalogHandler(catalogClient),
		wardrobeHandler: handler.NewWardrobeHandler(wardrobeService),
		outfitHandler:   handler.NewOutfitHandler(outfitService, wardrobeService),
		purchaseHandler: handler.NewPurchaseHandler(purchaseService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/catalog/search", s.catalogHandler.Search)

	// -------- wardrobe --------
	wardrobe := api.Group("/wardrobe")
	wardrobe.POST("/products", s.wardrobeHandler.SaveProduct)
	wardrobe.POST("/equip", s.wardrobeHandler.Equip)
	wardrobe.DELETE("/equip/:slot", s.wardrobeHandler.Unequip)
	wardrobe.POST("/reset", s.wardrobeHandler.Reset)
	wardrobe.GET("/state", s.wardrobeHandler.GetState)

	// -------- outfit rendering --------
	// Portrait uploads are bounded before anything reaches the image model.
	outfit := api.Group("/outfit", middleware.BodyLimit("5M"))
	outfit.POST("/render", s.outfitHandler.Render)

	// -------- purchase --------
	api.POST("/purchase", s.purchaseHandler.Purchase)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
