package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garronej/react-envs/cmd/inject"
	"github.com/garronej/react-envs/cmd/inspect"
	"github.com/garronej/react-envs/cmd/updatetypes"
)

var rootCmd = &cobra.Command{
	Use:   "react-envs",
	Short: "react-envs",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(inject.Command)
	rootCmd.AddCommand(inspect.Command)
	rootCmd.AddCommand(updatetypes.Command)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
