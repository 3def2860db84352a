// Command squill is a multi-engine SQL workbench CLI.
package main

import (
	"fmt"
	"os"

	"github.com/squill-labs/squill/internal/cli"

	// Engine drivers register themselves on import.
	_ "github.com/squill-labs/squill/pkg/drivers/clickhouse"
	_ "github.com/squill-labs/squill/pkg/drivers/mssql"
	_ "github.com/squill-labs/squill/pkg/drivers/mysql"
	_ "github.com/squill-labs/squill/pkg/drivers/postgres"
	_ "github.com/squill-labs/squill/pkg/drivers/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
