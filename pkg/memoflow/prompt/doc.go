// Package prompt renders model prompts from templates with ${var}
// placeholders.
//
// Templates pair a system prompt with a user prompt:
//
//	tmpl := prompt.Template{
//	    System: "You convert memos into tasks. Current time: ${current_datetime}",
//	    User:   "${memo}",
//	}
//	r, err := tmpl.Render(map[string]any{
//	    "current_datetime": time.Now(),
//	    "memo":             memoText,
//	})
//
// Only the ${var} form is expanded. Bare dollar signs in memo text are
// left alone. By default a placeholder with no value is an error so an
// incomplete prompt never reaches the model.
package prompt
