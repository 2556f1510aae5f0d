package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "freeboard",
	Short: "freeboard is a community discussion board backend.",
	// 不带子命令时直接启动服务
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

// Execute ...
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
