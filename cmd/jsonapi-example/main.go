// Command jsonapi-example serves an in-memory blog through the JSON:API read endpoints.
package main

func main() {
	Execute()
}
