/*
Package tasksdk provides a client SDK for interacting with the taskd task
tracking service.

The package is organized around two main types:

  - SDKClient: unauthenticated operations (register, login, health) and the
    entry point for creating authenticated sessions
  - Session: authenticated task operations carrying a bearer token

Create an SDKClient to register and log in:

	client := tasksdk.NewSDKClient("https://tasks.example.com")

	user, err := client.Register(ctx, "a@x.com", "password", "Alice")
	session, err := client.Login(ctx, "a@x.com", "password")

Use the Session for task operations:

	task, err := session.CreateTask(ctx, tasksdk.TaskRequest{Title: "ship it"})
	tasks, err := session.ListTasks(ctx, 0, 100)
	task, err = session.CompleteTask(ctx, task.ID)
	err = session.DeleteTask(ctx, task.ID)

Access tokens are stateless and expire server-side; there is no refresh
flow. When a Session's token expires, log in again.

The response and error types in this package are shared with the server's
HTTP handlers so the wire format is defined exactly once.
*/
package tasksdk
