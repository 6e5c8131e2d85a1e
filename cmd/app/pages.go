package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/core/internal/domain/catalog"
	"github.com/storefront/core/internal/domain/identity"
	"github.com/storefront/core/internal/interfaces/router"
)

// demoProducts are the view-layer fixtures backing the page handlers.
var demoProducts = []catalog.Product{
	{ID: "p-1001", Name: "Wireless Earbuds", Price: decimal.RequireFromString("49.99"), BulkPrice: decimal.RequireFromString("39.99"), Category: "electronics"},
	{ID: "p-1002", Name: "Smart Watch", Price: decimal.RequireFromString("129.00"), BulkPrice: decimal.RequireFromString("99.00"), Category: "electronics"},
	{ID: "p-1003", Name: "Yoga Mat", Price: decimal.RequireFromString("24.50"), BulkPrice: decimal.RequireFromString("19.00"), Category: "fitness"},
	{ID: "p-1004", Name: "Ceramic Mug Set", Price: decimal.RequireFromString("18.00"), BulkPrice: decimal.RequireFromString("14.40"), Category: "home"},
}

func findProduct(id string) (catalog.Product, bool) {
	for _, p := range demoProducts {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// buildRoutes assembles the full role-namespaced route table. Handlers are
// thin text views; the interesting part is which page set a role reaches.
func (a *app) buildRoutes() []router.Route {
	page := func(title string) router.Handler {
		return func(router.Params) { a.viewport.Render(a.header() + title) }
	}

	return []router.Route{
		{Pattern: "/", Handler: func(router.Params) { a.renderHome() }},
		{Pattern: "/login", Handler: page("Login - enter your email and password.")},
		{Pattern: "/register", Handler: page("Register - create a consumer, business, dropshipper or supplier account.")},

		// Consumer routes
		{Pattern: "/products", Handler: func(router.Params) { a.renderProducts("") }},
		{Pattern: "/category/:slug", Handler: func(p router.Params) { a.renderProducts(p["slug"]) }},
		{Pattern: "/product/:id", Handler: func(p router.Params) { a.renderProductDetail(p["id"]) }},
		{Pattern: "/supplier/:id", Handler: func(p router.Params) { a.viewport.Render(a.header() + "Supplier profile " + p["id"]) }},
		{Pattern: "/cart", Handler: func(router.Params) { a.renderCart() }},
		{Pattern: "/checkout", Handler: page("Checkout")},
		{Pattern: "/order-confirmation/:id", Handler: func(p router.Params) { a.viewport.Render(a.header() + "Order " + p["id"] + " confirmed.") }},
		{Pattern: "/account", Handler: page("Account overview")},
		{Pattern: "/account/orders", Handler: page("Your orders")},
		{Pattern: "/account/wishlist", Handler: func(router.Params) { a.renderWishlist() }},
		{Pattern: "/account/profile", Handler: page("Profile settings")},

		// Business (B2B) routes
		{Pattern: "/business/suppliers", Handler: page("Supplier directory")},
		{Pattern: "/business/supplier/:id", Handler: func(p router.Params) { a.viewport.Render(a.header() + "B2B supplier " + p["id"]) }},
		{Pattern: "/business/rfq/create", Handler: page("Create RFQ")},
		{Pattern: "/business/rfq", Handler: page("Your RFQs")},
		{Pattern: "/business/rfq/:id", Handler: page("Your RFQs")},
		{Pattern: "/business/quotes", Handler: page("Received quotes")},
		{Pattern: "/business/account", Handler: page("Business account")},

		// Dropshipper routes
		{Pattern: "/dropshipper/storefront", Handler: page("My storefront")},
		{Pattern: "/dropshipper/store/:name", Handler: page("Public store")},
		{Pattern: "/dropshipper/catalog", Handler: page("Import catalog")},
		{Pattern: "/dropshipper/profit-calculator", Handler: page("Profit calculator")},
		{Pattern: "/dropshipper/analytics", Handler: page("Store analytics")},
		{Pattern: "/dropshipper/orders", Handler: page("Dropship orders")},

		// Warehouse routes
		{Pattern: "/warehouse/receiving", Handler: page("Receiving dock")},
		{Pattern: "/warehouse/inventory", Handler: page("Inventory")},
		{Pattern: "/warehouse/fulfillment", Handler: page("Fulfillment queue")},
		{Pattern: "/warehouse/shipping", Handler: page("Shipping")},
		{Pattern: "/warehouse/returns", Handler: page("Returns")},
		{Pattern: "/warehouse/reports", Handler: page("Warehouse reports")},

		// Supplier routes
		{Pattern: "/supplier/products", Handler: page("Your products")},
		{Pattern: "/supplier/orders", Handler: page("Incoming orders")},
		{Pattern: "/supplier/rfq", Handler: page("Open RFQs")},
		{Pattern: "/supplier/reports", Handler: page("Supplier reports")},

		// Admin routes
		{Pattern: "/admin/users", Handler: page("User management")},
		{Pattern: "/admin/marketing", Handler: page("Marketing")},
		{Pattern: "/admin/reports", Handler: func(router.Params) { a.renderHome() }},
		{Pattern: "/admin/settings", Handler: page("Platform settings")},

		// Support pages
		{Pattern: "/about", Handler: page("About us")},
		{Pattern: "/contact", Handler: page("Contact")},
		{Pattern: "/faq", Handler: page("FAQ")},
		{Pattern: "/shipping", Handler: page("Shipping policy")},
		{Pattern: "/privacy", Handler: page("Privacy policy")},
		{Pattern: "/terms", Handler: page("Terms of service")},

		// Search
		{Pattern: "/search", Handler: func(p router.Params) { a.renderSearch(p["q"]) }},
	}
}

// header is the shared chrome: role and cart badge
func (a *app) header() string {
	return fmt.Sprintf("[%s | cart: %d]\n", strings.ToUpper(a.state.UserRole().String()), a.state.CartCount())
}

// renderHome selects the home page for the active role
func (a *app) renderHome() {
	titles := map[identity.Role]string{
		identity.RoleConsumer:    "Consumer home - featured products and categories.",
		identity.RoleBusiness:    "Business home - suppliers, RFQs and bulk pricing.",
		identity.RoleDropshipper: "Dropshipper home - storefront and catalog tools.",
		identity.RoleWarehouse:   "Warehouse home - receiving, inventory, fulfillment.",
		identity.RoleSupplier:    "Supplier home - products, orders and reports.",
		identity.RoleAdmin:       "Admin dashboard - platform metrics.",
	}
	title, ok := titles[a.state.UserRole()]
	if !ok {
		title = titles[identity.RoleConsumer]
	}
	a.viewport.Render(a.header() + title)
}

func (a *app) renderProducts(category string) {
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("Products")
	if category != "" {
		b.WriteString(" in " + category)
	}
	bulk := a.state.UserRole() == identity.RoleBusiness
	for _, p := range demoProducts {
		if category != "" && p.Category != category {
			continue
		}
		fmt.Fprintf(&b, "\n  %s  %-18s $%s", p.ID, p.Name, p.PriceFor(bulk).StringFixed(2))
	}
	a.viewport.Render(b.String())
}

func (a *app) renderProductDetail(id string) {
	p, ok := findProduct(id)
	if !ok {
		// Referential absence is the page's concern: show an empty state
		a.viewport.Render(a.header() + "Product not found.")
		return
	}
	bulk := a.state.UserRole() == identity.RoleBusiness
	wish := ""
	if a.state.IsInWishlist(p.ID) {
		wish = " (wishlisted)"
	}
	a.viewport.Render(fmt.Sprintf("%s%s - $%s%s", a.header(), p.Name, p.PriceFor(bulk).StringFixed(2), wish))
}

func (a *app) renderCart() {
	var b strings.Builder
	b.WriteString(a.header())
	snap := a.state.Snapshot()
	if len(snap.Cart) == 0 {
		b.WriteString("Your cart is empty.")
		a.viewport.Render(b.String())
		return
	}
	b.WriteString("Cart")
	bulk := snap.UserRole == identity.RoleBusiness
	for _, line := range snap.Cart {
		fmt.Fprintf(&b, "\n  %dx %-18s $%s", line.Quantity, line.Product.Name, line.Amount(bulk).StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s", a.state.CartTotal().StringFixed(2))
	a.viewport.Render(b.String())
}

func (a *app) renderWishlist() {
	var b strings.Builder
	b.WriteString(a.header())
	snap := a.state.Snapshot()
	if len(snap.Wishlist) == 0 {
		b.WriteString("Your wishlist is empty.")
	} else {
		b.WriteString("Wishlist")
		for _, p := range snap.Wishlist {
			fmt.Fprintf(&b, "\n  %s  %s", p.ID, p.Name)
		}
	}
	a.viewport.Render(b.String())
}

func (a *app) renderSearch(query string) {
	var b strings.Builder
	b.WriteString(a.header())
	fmt.Fprintf(&b, "Search results for %q", query)
	lowered := strings.ToLower(query)
	for _, p := range demoProducts {
		if query != "" && strings.Contains(strings.ToLower(p.Name), lowered) {
			fmt.Fprintf(&b, "\n  %s  %s", p.ID, p.Name)
		}
	}
	a.viewport.Render(b.String())
}
