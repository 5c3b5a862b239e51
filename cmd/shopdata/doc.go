// Command shopdata builds a small synthetic shop database end to end.
//
//	shopdata generate           # write the five CSV files
//	shopdata ingest             # load them into a fresh SQLite database
//	shopdata report             # print the top customers by spend
//	shopdata pipeline           # all three in order
//	shopdata migrate            # run pending schema migrations
//	shopdata migrate:rollback
//	shopdata migrate:status
//
// Settings come from config/app.json and .env in the working directory
// (DATA_DIR, DB_PATH, REPORT_DB_PATH, SEED, ROW_COUNT, STORAGE_DISK,
// METRICS_FILE, ...). Flags override them for a single run.
package main
