// A streamed completion; chunks are returned once the stream terminates.
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

	client.AddMessage(groq.User("Write a haiku about latency"))

	out, err := client.Create(context.Background(),
		groq.NewRequest("mixtral-8x7b-32768").WithStream(true))
	if err != nil {
		log.Fatal(err)
	}

	chunks, _ := out.Chunks()
	fmt.Printf("received %d chunks\n", len(chunks))
	fmt.Println(out.Text())
}
