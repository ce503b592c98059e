package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/va6996/mcpworkshop/orm"
)

const rule = "============================================================"

func newInitDBCmd(c *cli) *cobra.Command {
	var reset, yes bool
	cmd := &cobra.Command{
		Use:       "initdb <store|insurance>",
		Short:     "Create and seed a workshop database",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"store", "insurance"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name != "store" && name != "insurance" {
				return fmt.Errorf("unknown database: %s", name)
			}
			dsn := c.cfg.Database.DSNFor(name)
			db, err := orm.Open(c.cfg.Database.Driver, dsn)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rule)
			fmt.Fprintln(out, "Inicialización de Base de Datos - Workshop MCP")
			fmt.Fprint(out, rule+"\n\n")

			ok, err := initDatabase(db, name, reset, yes, cmd.InOrStdin(), out, time.Now())
			if err != nil || !ok {
				return err
			}

			fmt.Fprintln(out, "✅ Inicialización completada exitosamente")
			fmt.Fprintf(out, "📁 Base de datos creada en: %s\n\n", dsn)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop the existing tables first")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask before resetting")
	return cmd
}

// initDatabase resets (when asked and confirmed), migrates, seeds and
// summarizes the database. It reports false when the user cancelled.
func initDatabase(db *gorm.DB, name string, reset, yes bool, in io.Reader, out io.Writer, now time.Time) (bool, error) {
	has, err := orm.HasData(db, name)
	if err != nil {
		return false, err
	}

	if has && reset {
		if !yes && !confirm(in, out, "Ya existe una base de datos. ¿Deseas resetearla? (s/n): ") {
			fmt.Fprintln(out, "Operación cancelada")
			return false, nil
		}
		if err := orm.Reset(db, name); err != nil {
			return false, err
		}
		fmt.Fprintln(out, "✅ Base de datos eliminada")
	}

	fmt.Fprintln(out, "Creando tablas...")
	if err := orm.Migrate(db, name); err != nil {
		return false, err
	}
	fmt.Fprintln(out, "✅ Tablas creadas")

	fmt.Fprintln(out, "\nInsertando datos de ejemplo...")
	if err := orm.Seed(db, name, now); err != nil {
		return false, err
	}

	if name == "insurance" {
		return true, printInsuranceSummary(db, out)
	}
	return true, printStoreSummary(db, out)
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "s")
}

func printStoreSummary(db *gorm.DB, out io.Writer) error {
	s, err := orm.StoreSummary(db)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "Resumen de la Base de Datos")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "\n📦 Total de productos: %d\n", s.TotalProducts)
	fmt.Fprintln(out, "\nProductos por categoría:")
	for _, row := range s.ProductsByCategory {
		fmt.Fprintf(out, "  • %s: %d productos\n", row.Name, row.Count)
	}
	fmt.Fprintf(out, "\n👥 Total de clientes: %d\n", s.TotalCustomers)
	fmt.Fprintln(out, "\nClientes por ciudad:")
	for _, row := range s.CustomersByCity {
		fmt.Fprintf(out, "  • %s: %d clientes\n", row.Name, row.Count)
	}
	fmt.Fprint(out, "\n"+rule+"\n\n")
	return nil
}

func printInsuranceSummary(db *gorm.DB, out io.Writer) error {
	s, err := orm.SummarizeInsurance(db)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "Resumen de la Base de Datos")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "\n🛡️  Productos de seguros: %d\n", s.TotalProducts)
	fmt.Fprintf(out, "📄 Total de pólizas: %d\n", s.TotalPolicies)
	fmt.Fprintln(out, "\nPólizas por tipo:")
	for _, row := range s.PoliciesByType {
		fmt.Fprintf(out, "  • %s: %d pólizas\n", row.Name, row.Count)
	}
	fmt.Fprintf(out, "\n👥 Total de clientes: %d\n", s.TotalCustomers)
	fmt.Fprint(out, "\n"+rule+"\n\n")
	return nil
}
