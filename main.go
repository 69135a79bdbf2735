package main

import "github.com/frahmantamala/marketplace-storefront/cmd"

func main() {
	cmd.Execute()
}
