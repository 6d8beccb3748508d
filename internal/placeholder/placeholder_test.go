package placeholder

import (
	"testing"

	"github.com/noopejs/go-rgen/internal/naming"
	"github.com/stretchr/testify/require"
)

func TestRender_AllTokens(t *testing.T) {
	template := `import $capitalizedComponent from "./$kebabed.component";
const $camelizedService = new $capitalizedService();
document.title = "$regularized";
.$kebabed { color: red; }`

	out := RenderName(template, "UserProfile")

	require.Equal(t, `import UserProfileComponent from "./user-profile.component";
const userProfileService = new UserProfileService();
document.title = "User Profile";
.user-profile { color: red; }`, out)

	for _, token := range Tokens {
		require.NotContains(t, out, token)
	}
	require.False(t, Contains(out))
}

func TestRender_UnknownTokensUntouched(t *testing.T) {
	out := RenderName("$1 and $2 and $kebab and $kebabed", "my-thing")
	require.Equal(t, "$1 and $2 and $kebab and my-thing", out)
}

func TestRender_Paths(t *testing.T) {
	forms := naming.Derive("UserProfile")

	require.Equal(t, "src/user-profile/user-profile.module.ts", Render("src/$kebabed/$kebabed.module.ts", forms))
	require.Equal(t, "UserProfile.tsx", Render("$capitalized.tsx", forms))
}

func TestRender_OrderIndependent(t *testing.T) {
	forms := naming.Derive("order item")

	a := Render("$kebabed$camelized$capitalized$regularized", forms)
	b := Render("$regularized$capitalized$camelized$kebabed", forms)

	require.Equal(t, "order-itemorder itemOrder itemOrder Item", a)
	require.Equal(t, "Order ItemOrder itemorder itemorder-item", b)
}

func TestContains(t *testing.T) {
	require.True(t, Contains("$kebabed.service.ts"))
	require.True(t, Contains("hello $regularized"))
	require.False(t, Contains("user-profile.service.ts"))
	require.False(t, Contains("cost: $5"))
}
