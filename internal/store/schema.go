package store

// Schema DDL. Every statement uses IF NOT EXISTS so bootstrap and
// re-applied migration steps are idempotent. Timestamps are stored as TEXT
// in the canonical UTC layout (types.TimestampLayout).
const (
	createSchemaVersion = `CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL,
    applied_at TEXT NOT NULL
);`

	createCheckedItems = `CREATE TABLE IF NOT EXISTS checked_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game TEXT NOT NULL,
    league TEXT NOT NULL,
    name TEXT NOT NULL,
    base_type TEXT NOT NULL DEFAULT '',
    value REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'chaos',
    checked_at TEXT NOT NULL
);`

	createSales = `CREATE TABLE IF NOT EXISTS sales (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game TEXT NOT NULL,
    league TEXT NOT NULL,
    item_name TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    listed_price REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'chaos',
    listed_at TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'listed',
    sold_price REAL,
    sold_at TEXT,
    time_to_sale INTEGER
);`

	createPriceSnapshots = `CREATE TABLE IF NOT EXISTS price_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game TEXT NOT NULL,
    league TEXT NOT NULL,
    item_name TEXT NOT NULL,
    value REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'chaos',
    recorded_at TEXT NOT NULL
);`

	createPriceChecks = `CREATE TABLE IF NOT EXISTS price_checks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game TEXT NOT NULL,
    league TEXT NOT NULL,
    item_name TEXT NOT NULL,
    session_id TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createPriceQuotes = `CREATE TABLE IF NOT EXISTS price_quotes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    check_id INTEGER NOT NULL,
    source TEXT NOT NULL,
    price REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'chaos',
    lister_account TEXT NOT NULL DEFAULT '',
    indexed_age_hours REAL NOT NULL DEFAULT 0,
    fetched_at TEXT NOT NULL,
    FOREIGN KEY (check_id) REFERENCES price_checks(id) ON DELETE CASCADE
);`

	createPluginState = `CREATE TABLE IF NOT EXISTS plugin_state (
    plugin_id TEXT PRIMARY KEY,
    enabled INTEGER NOT NULL DEFAULT 0,
    config TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL
);`

	createCurrencyRates = `CREATE TABLE IF NOT EXISTS currency_rates (
    league TEXT NOT NULL,
    currency TEXT NOT NULL,
    chaos_equivalent REAL NOT NULL,
    fetched_at TEXT NOT NULL,
    PRIMARY KEY (league, currency)
);`

	createEconomySnapshots = `CREATE TABLE IF NOT EXISTS league_economy_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    league TEXT NOT NULL,
    divine_chaos REAL NOT NULL,
    recorded_at TEXT NOT NULL
);`

	createEconomyTopUniques = `CREATE TABLE IF NOT EXISTS league_economy_top_uniques (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    chaos_value REAL NOT NULL,
    rank INTEGER NOT NULL,
    FOREIGN KEY (snapshot_id) REFERENCES league_economy_snapshots(id) ON DELETE CASCADE
);`

	createAdviceCache = `CREATE TABLE IF NOT EXISTS upgrade_advice_cache (
    profile TEXT NOT NULL,
    slot TEXT NOT NULL,
    advice TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (profile, slot)
);`

	createAdviceHistory = `CREATE TABLE IF NOT EXISTS upgrade_advice_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    profile TEXT NOT NULL,
    slot TEXT NOT NULL,
    advice TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createVerdictStats = `CREATE TABLE IF NOT EXISTS verdict_stats (
    game TEXT NOT NULL,
    league TEXT NOT NULL,
    underpriced INTEGER NOT NULL DEFAULT 0,
    fair INTEGER NOT NULL DEFAULT 0,
    overpriced INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (game, league)
);`

	createPriceAlerts = `CREATE TABLE IF NOT EXISTS price_alerts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game TEXT NOT NULL,
    league TEXT NOT NULL,
    item_name TEXT NOT NULL,
    threshold_chaos REAL NOT NULL,
    direction TEXT NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    triggered_at TEXT
);`
)

// Index DDL for the common query paths.
const (
	idxCheckedItemsChecked = `CREATE INDEX IF NOT EXISTS idx_checked_items_checked_at ON checked_items(checked_at);`
	idxCheckedItemsLeague  = `CREATE INDEX IF NOT EXISTS idx_checked_items_game_league ON checked_items(game, league);`
	idxSalesStatus         = `CREATE INDEX IF NOT EXISTS idx_sales_status ON sales(status);`
	idxSalesListed         = `CREATE INDEX IF NOT EXISTS idx_sales_listed_at ON sales(listed_at);`
	idxSnapshotsItem       = `CREATE INDEX IF NOT EXISTS idx_price_snapshots_item ON price_snapshots(game, league, item_name);`
	idxQuotesCheck         = `CREATE INDEX IF NOT EXISTS idx_price_quotes_check ON price_quotes(check_id);`
	idxEconomyLeague       = `CREATE INDEX IF NOT EXISTS idx_economy_snapshots_league ON league_economy_snapshots(league, recorded_at);`
	idxTopUniquesSnapshot  = `CREATE INDEX IF NOT EXISTS idx_economy_top_uniques_snapshot ON league_economy_top_uniques(snapshot_id);`
	idxAdviceHistoryKey    = `CREATE INDEX IF NOT EXISTS idx_advice_history_key ON upgrade_advice_history(profile, slot, created_at);`
	idxAlertsEnabled       = `CREATE INDEX IF NOT EXISTS idx_price_alerts_enabled ON price_alerts(enabled);`
)

// entityTables lists every entity table in dependency order. schema_version
// is deliberately absent: wipes and exports must never touch the version
// log.
var entityTables = []string{
	"checked_items",
	"sales",
	"price_snapshots",
	"price_checks",
	"price_quotes",
	"plugin_state",
	"currency_rates",
	"league_economy_snapshots",
	"league_economy_top_uniques",
	"upgrade_advice_cache",
	"upgrade_advice_history",
	"verdict_stats",
	"price_alerts",
}
