package database

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (login, password, phone, fav_items, role)
		VALUES ($1, $2, $3, '', $4)`

	GetUserByLoginSQL = `
		SELECT login, password, phone, fav_items, role, created_at
		FROM users WHERE login = $1`

	UpdateUserPasswordSQL = `
		UPDATE users SET password = $1 WHERE login = $2`

	UpdateUserFavItemsSQL = `
		UPDATE users SET fav_items = $1 WHERE login = $2`

	UpdateUserRoleSQL = `
		UPDATE users SET role = $1 WHERE login = $2`
)

// Menu queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (name, type, price, description, image_url)
		VALUES ($1, $2, $3, $4, $5)`

	DeleteMenuItemSQL = `
		DELETE FROM menu_items WHERE name = $1`

	UpdateMenuItemSQL = `
		UPDATE menu_items SET type = $1, price = $2, description = $3, image_url = $4
		WHERE name = $5`

	GetMenuItemSQL = `
		SELECT name, type, price, description, image_url
		FROM menu_items WHERE name = $1`

	GetMenuItemPriceSQL = `
		SELECT price FROM menu_items WHERE name = $1`

	ListMenuByTypeSQL = `
		SELECT name, type, price, description, image_url
		FROM menu_items WHERE type = $1 ORDER BY name`

	ListMenuSQL = `
		SELECT name, type, price, description, image_url
		FROM menu_items ORDER BY type, name`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (login, paid, total)
		VALUES ($1, false, $2)
		RETURNING id, created_at`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, item_name, price, status)
		VALUES ($1, $2, $3, $4)`

	GetOrderSQL = `
		SELECT id, login, paid, total, created_at
		FROM orders WHERE id = $1`

	LockOrderSQL = `
		SELECT id, login, paid, total, created_at
		FROM orders WHERE id = $1
		FOR UPDATE`

	AddToOrderTotalSQL = `
		UPDATE orders SET total = total + $1
		WHERE id = $2
		RETURNING total`

	SetOrderPaidSQL = `
		UPDATE orders SET paid = $1 WHERE id = $2`

	ListOrdersForUserSQL = `
		SELECT id, login, paid, total, created_at
		FROM orders WHERE login = $1
		ORDER BY id DESC
		LIMIT $2`

	ListOpenOrdersSQL = `
		SELECT id, login, paid, total, created_at
		FROM orders
		WHERE paid = false AND created_at >= $1
		ORDER BY created_at DESC`
)

// Order line queries
const (
	GetOrderLineSQL = `
		SELECT order_id, item_name, price, status, comment, last_updated
		FROM order_lines WHERE order_id = $1 AND item_name = $2`

	ListOrderLinesSQL = `
		SELECT order_id, item_name, price, status, comment, last_updated
		FROM order_lines WHERE order_id = $1
		ORDER BY item_name`

	ListOrderLinesByStatusSQL = `
		SELECT order_id, item_name, price, status, comment, last_updated
		FROM order_lines WHERE order_id = $1 AND status = $2
		ORDER BY item_name`

	SetLineStatusSQL = `
		UPDATE order_lines SET status = $1, last_updated = NOW()
		WHERE order_id = $2 AND item_name = $3`

	SetLineCommentSQL = `
		UPDATE order_lines SET comment = $1, last_updated = NOW()
		WHERE order_id = $2 AND item_name = $3`
)
