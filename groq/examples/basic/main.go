// A minimal non-streaming completion.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lgc202/groqkit/groq"
)

func main() {
	client, err := groq.New(os.Getenv("GROQ_API_KEY"))
	if err != nil {
		log.Fatal(err)
	}

	client.AddMessage(groq.User("Explain the importance of fast language models"))

	out, err := client.Create(context.Background(), groq.NewRequest("mixtral-8x7b-32768"))
	if err != nil {
		log.Fatal(err)
	}

	resp, _ := out.Response()
	fmt.Println(resp.FirstText())
	fmt.Printf("tokens: %d in %.3fs\n", resp.Usage.TotalTokens, resp.Usage.TotalTime)
}
