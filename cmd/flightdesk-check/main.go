// Command flightdesk-check runs the conflict and ranking engine over CSV
// exports of the pilot roster, drone fleet and mission list.
package main

func main() {
	Execute()
}
