package store

const (
	// participants

	getPendingParticipants = `
		SELECT id, name, email, phone, updated_at, is_deleted, needs_sync
		FROM participants
		WHERE needs_sync = 1;`

	getParticipantByID = `
		SELECT id, name, email, phone, updated_at, is_deleted, needs_sync
		FROM participants
		WHERE id = ?;`

	upsertParticipant = `
		INSERT INTO participants (id, name, email, phone, updated_at, is_deleted, needs_sync)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name       = excluded.name,
			email      = excluded.email,
			phone      = excluded.phone,
			updated_at = excluded.updated_at,
			is_deleted = excluded.is_deleted,
			needs_sync = excluded.needs_sync;`

	deleteParticipantMemberships = `DELETE FROM group_members WHERE participant_id = ?;`
	nullParticipantPayerRefs     = `UPDATE expenses SET paid_by_id = NULL WHERE paid_by_id = ?;`
	nullParticipantShareRefs     = `UPDATE expense_shares SET participant_id = NULL WHERE participant_id = ?;`
	deleteParticipant            = `DELETE FROM participants WHERE id = ?;`

	rewriteParticipantID    = `UPDATE participants SET id = ? WHERE id = ?;`
	rewriteMembershipRefs   = `UPDATE group_members SET participant_id = ? WHERE participant_id = ?;`
	rewritePayerRefs        = `UPDATE expenses SET paid_by_id = ? WHERE paid_by_id = ?;`
	rewriteShareRefs        = `UPDATE expense_shares SET participant_id = ? WHERE participant_id = ?;`
	copyMembershipsToMerged = `
		INSERT OR IGNORE INTO group_members (group_id, participant_id)
		SELECT group_id, ? FROM group_members WHERE participant_id = ?;`

	// groups

	getPendingGroups = `
		SELECT id, name, default_currency_code, updated_at, is_deleted, needs_sync
		FROM groups
		WHERE needs_sync = 1;`

	getGroupByID = `
		SELECT id, name, default_currency_code, updated_at, is_deleted, needs_sync
		FROM groups
		WHERE id = ?;`

	upsertGroup = `
		INSERT INTO groups (id, name, default_currency_code, updated_at, is_deleted, needs_sync)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name                  = excluded.name,
			default_currency_code = excluded.default_currency_code,
			updated_at            = excluded.updated_at,
			is_deleted            = excluded.is_deleted,
			needs_sync            = excluded.needs_sync;`

	deleteGroupMemberships = `DELETE FROM group_members WHERE group_id = ?;`

	// inserts only when the participant exists locally: unknown members from
	// a pull are dropped rather than violating the foreign key
	insertGroupMember = `
		INSERT INTO group_members (group_id, participant_id)
		SELECT ?, id FROM participants WHERE id = ?;`

	nullGroupExpenseRefs = `UPDATE expenses SET group_id = NULL WHERE group_id = ?;`
	deleteGroup          = `DELETE FROM groups WHERE id = ?;`

	// expenses

	getPendingExpenses = `
		SELECT id, description, amount, is_settlement, group_id, currency_code, paid_by_id,
		       created_at, updated_at, is_deleted, needs_sync
		FROM expenses
		WHERE needs_sync = 1;`

	getExpenseByID = `
		SELECT id, description, amount, is_settlement, group_id, currency_code, paid_by_id,
		       created_at, updated_at, is_deleted, needs_sync
		FROM expenses
		WHERE id = ?;`

	listExpensesByGroup = `
		SELECT id, description, amount, is_settlement, group_id, currency_code, paid_by_id,
		       created_at, updated_at, is_deleted, needs_sync
		FROM expenses
		WHERE group_id = ? AND is_deleted = 0
		ORDER BY created_at;`

	upsertExpense = `
		INSERT INTO expenses (id, description, amount, is_settlement, group_id, currency_code,
		                      paid_by_id, created_at, updated_at, is_deleted, needs_sync)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			description   = excluded.description,
			amount        = excluded.amount,
			is_settlement = excluded.is_settlement,
			group_id      = excluded.group_id,
			currency_code = excluded.currency_code,
			paid_by_id    = excluded.paid_by_id,
			created_at    = excluded.created_at,
			updated_at    = excluded.updated_at,
			is_deleted    = excluded.is_deleted,
			needs_sync    = excluded.needs_sync;`

	deleteExpenseShares = `DELETE FROM expense_shares WHERE expense_id = ?;`
	insertExpenseShare  = `INSERT INTO expense_shares (id, expense_id, participant_id, amount) VALUES (?, ?, ?, ?);`
	deleteExpense       = `DELETE FROM expenses WHERE id = ?;`

	// currencies

	upsertCurrency = `
		INSERT INTO currencies (code, name, numeric_code, name_plural, decimal_digits,
		                        rounding, symbol, symbol_native, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			name           = excluded.name,
			numeric_code   = excluded.numeric_code,
			name_plural    = excluded.name_plural,
			decimal_digits = excluded.decimal_digits,
			rounding       = excluded.rounding,
			symbol         = excluded.symbol,
			symbol_native  = excluded.symbol_native;`

	getAllCurrencies = `
		SELECT code, name, numeric_code, name_plural, decimal_digits,
		       rounding, symbol, symbol_native, is_active
		FROM currencies
		ORDER BY code;`

	setCurrencyActive = `UPDATE currencies SET is_active = ? WHERE code = ?;`

	// sync state

	getSyncStateValue = `SELECT value FROM sync_state WHERE key = ?;`

	setSyncStateValue = `
		INSERT INTO sync_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
)
