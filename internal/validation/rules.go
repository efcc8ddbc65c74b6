package validation

// Request rule sets, one per endpoint that accepts input.

func CreateAccount() []*Chain {
	return []*Chain{
		Body("name").Is("required", "El nombre no puede ir vacío"),
		Body("password").Is("min=8", "La contraseña debe tener mínimo 8 caracteres"),
		Body("email").Is("email", "Correo no válido"),
	}
}

func ConfirmAccount() []*Chain {
	return []*Chain{
		Body("token").Is("len=6", "Token no válido"),
	}
}

func Login() []*Chain {
	return []*Chain{
		Body("email").Is("email", "Correo no válido"),
		Body("password").Is("required", "La contraseña no debe ir vacía"),
	}
}

func ForgotPassword() []*Chain {
	return []*Chain{
		Body("email").Is("email", "Correo no válido"),
	}
}

func ValidateToken() []*Chain {
	return []*Chain{
		Body("token").Is("required", "Token no válido").Is("len=6", ""),
	}
}

func ResetPassword() []*Chain {
	return []*Chain{
		Param("token").Is("required", "Token no válido").Is("len=6", ""),
		Body("password").Is("min=8", "La contraseña debe tener mínimo 8 caracteres"),
	}
}

func UpdateProfile() []*Chain {
	return []*Chain{
		Body("name").Is("required", "El nombre no puede ir vacío"),
		Body("email").Is("email", "Correo no válido"),
	}
}

func UpdatePassword() []*Chain {
	return []*Chain{
		Body("current_password").Is("required", "La contraseña actual no puede ir vacía"),
		Body("password").Is("min=8", "La nueva contraseña debe tener mínimo 8 caracteres"),
	}
}

func CheckPassword() []*Chain {
	return []*Chain{
		Body("password").Is("required", "La contraseña actual no puede ir vacía"),
	}
}

func BudgetInput() []*Chain {
	return []*Chain{
		Body("name").Is("required", "El nombre del presupuesto no puede ir vacio"),
		Body("amount").
			Is("required", "La cantidad del presupuesto no puede ir vacia").
			Is("numeric", "Cantidad no válida").
			Number("gt=0", "El presupuesto debe ser mayor a 0"),
	}
}

func ExpenseInput() []*Chain {
	return []*Chain{
		Body("name").Is("required", "El nombre del gasto no puede ir vacio"),
		Body("amount").
			Is("required", "La cantidad del gasto no puede ir vacia").
			Is("numeric", "Cantidad no válida").
			Number("gt=0", "El gasto debe ser mayor a 0"),
	}
}

// ID checks a path parameter holds a positive integer.
func ID(param string) *Chain {
	return Param(param).
		Is("number", "ID no válido").Bail().
		Number("gt=0", "ID no válido").Bail()
}
