// @title           Continental Academy API
// @version         1.0
// @description     Бэкенд онлайн-академии: программы, курсы, магазин и оплата через Stripe.
// @host            localhost:8001
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "academy_backend/internal/app"

func main() {
	app.Run()
}
