// Loading client settings from a YAML file with env overrides and hot reload.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/lgc202/groqkit/config"
	"github.com/lgc202/groqkit/groq"
)

func main() {
	loader, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	loader.OnChange(func(old, new config.Settings) {
		fmt.Printf("settings changed: model %s -> %s\n", old.Model, new.Model)
	})

	client, err := loader.NewClient()
	if err != nil {
		log.Fatal(err)
	}

	client.AddMessage(groq.User("hello"))
	out, err := client.Create(context.Background(), groq.NewRequest(loader.Settings().Model))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Text())
}
