// Package form binds a schema of fields to live values and validation.
//
// A Form seeds values from defaults, resolves each field's effective rules
// (a compiled validator.Builder, or ad hoc Validation), and reacts to three
// events: Change stores a value, Blur validates one field and Submit
// validates all of them before calling the submit handler.
//
//	f, err := form.New([]form.Field{
//		{Name: "email", Type: form.KindEmail, Label: "Email", Required: true,
//			Validator: validator.Email()},
//	}, form.WithSubmitHandler(save))
//	if err != nil {
//		return err
//	}
//	_ = f.Change("email", "ada@example.com")
//	if err := f.Submit(); errors.Is(err, form.ErrValidation) {
//		// show f.Errors()
//	}
//
// Presentation is left to controls: Bindings describes each field together
// with OnChange and OnBlur callbacks, Dispatch selects the control for a
// kind and Layout arranges visible fields on a 1 to 3 column grid.
package form
