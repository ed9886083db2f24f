// One-shot messages: the pending buffer rides ahead of the history for a
// single request and is consumed by it.
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

	client.
		AddMessage(groq.System("You are a concise assistant.")).
		AddTmpMessage(groq.User("Answer in exactly one sentence: why are fast language models important?"))

	out, err := client.Create(context.Background(), groq.NewRequest("mixtral-8x7b-32768"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Text())

	if _, ok := client.PendingMessages(); !ok {
		fmt.Println("pending buffer consumed")
	}
}
