package main

// @title           CashTrackr API
// @version         1.0
// @description     Personal finance tracking: accounts, budgets and expenses
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
func main() {
	Execute()
}
