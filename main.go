package main

import "github.com/leomerlubo/wellflow/cmd/wellflow"

func main() {
	wellflow.Execute()
}
