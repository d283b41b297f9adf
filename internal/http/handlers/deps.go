package handlers

import (
	"ecocart/internal/config"
	"ecocart/internal/repos"
	"ecocart/internal/services"
	"ecocart/internal/syncer"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ShopHandler      *ShopHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	ProfileHandler   *ProfileHandler
	CommunityHandler *CommunityHandler
	AdminHandler     *AdminHandler
	AdminContent     *AdminContentHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := auth.Users
	postRepo := repos.NewPostRepo(db)
	ticketRepo := repos.NewTicketRepo(db)

	remote := syncer.New(cfg.ProfileAPI, cfg.CommunityAPI)

	cartSvc := services.NewCartService(prodRepo, cartRepo)
	orderSvc := services.NewOrderService(cartSvc, orderRepo, userRepo, remote)
	profileSvc := services.NewProfileService(userRepo)
	communitySvc := services.NewCommunityService(postRepo, remote)
	supportSvc := services.NewSupportService(ticketRepo)
	analyticsSvc := services.NewAnalyticsService(orderRepo, userRepo, prodRepo)

	return &Deps{
		ShopHandler:      &ShopHandler{Products: prodRepo},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Cart: cartSvc, Order: orderSvc, Auth: auth},
		ProfileHandler:   &ProfileHandler{Profile: profileSvc, Order: orderSvc},
		CommunityHandler: &CommunityHandler{Community: communitySvc, Support: supportSvc},
		AdminHandler:     &AdminHandler{Analytics: analyticsSvc, Products: prodRepo, Orders: orderRepo, Users: userRepo},
		AdminContent:     &AdminContentHandler{Posts: postRepo, Tickets: ticketRepo, Community: communitySvc, Support: supportSvc},
	}
}
