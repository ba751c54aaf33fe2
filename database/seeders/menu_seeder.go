package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

func init() {
	Register("menus", SeedMenus)
}

// SeedMenus inserts a small starter catalog. A non-empty collection is
// left untouched.
func SeedMenus(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.MenusCollection)

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	items := []interface{}{
		models.MenuItem{Name: "Roast Duck Breast", Recipe: "Roasted duck breast served with red wine jus", Category: "offered", Price: 14.5},
		models.MenuItem{Name: "Tuna Niçoise", Recipe: "Seared tuna, potatoes, olives and French beans", Category: "salad", Price: 10.5},
		models.MenuItem{Name: "Escalope de Veau", Recipe: "Pan-fried veal escalope with lemon butter", Category: "offered", Price: 12.5},
		models.MenuItem{Name: "Chicken and Walnut Salad", Recipe: "Poached chicken, walnuts and grapes on baby leaves", Category: "salad", Price: 10.0},
		models.MenuItem{Name: "Fish Parmentier", Recipe: "Smoked haddock and salmon under a potato crust", Category: "offered", Price: 12.5},
		models.MenuItem{Name: "Wild Mushroom Soup", Recipe: "Cream of wild mushrooms with truffle oil", Category: "soup", Price: 6.25},
		models.MenuItem{Name: "Chocolate Fondant", Recipe: "Warm chocolate cake with a molten centre", Category: "dessert", Price: 7.25},
		models.MenuItem{Name: "Margherita Pizza", Recipe: "Tomato, mozzarella and fresh basil", Category: "pizza", Price: 9.5},
		models.MenuItem{Name: "Lemon Sorbet", Recipe: "House-made sorbet with candied zest", Category: "dessert", Price: 5.0},
		models.MenuItem{Name: "Espresso Martini", Recipe: "Vodka, espresso and coffee liqueur", Category: "drinks", Price: 8.0},
	}

	_, err = col.InsertMany(ctx, items)
	return err
}
