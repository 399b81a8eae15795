package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,cost,category,name,brand,retail_price,department,sku,distribution_center_id
1,13.09,Tops & Tees,Low Profile Dyed Cotton Tee,MG,24.99,Women,EBD1234,1
2,4.50,Accessories,Canvas Belt,Allegra K,9.99,Men,FAB7777,2
3,2.75,Accessories,Mystery Item,,5.00,,ZZZ0001,3
`

func TestParseProducts(t *testing.T) {
	products, err := ParseProducts(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, products, 3)

	first := products[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "13.09", first.Cost.String())
	assert.Equal(t, "24.99", first.RetailPrice.String())
	assert.Equal(t, "Tops & Tees", first.Category)
	require.NotNil(t, first.Department)
	assert.Equal(t, "Women", *first.Department)
	assert.Equal(t, "EBD1234", first.SKU)
	assert.Equal(t, 1, first.DistributionCenterID)

	// empty department field must load as NULL, not empty string
	assert.Nil(t, products[2].Department)
	assert.Equal(t, "", products[2].Brand)
}

func TestParseProductsHeaderOrderIndependent(t *testing.T) {
	shuffled := `department,id,name,cost,retail_price,category,brand,sku,distribution_center_id
Outdoors,7,Tent,50.00,99.95,Camping,NorthPeak,TNT0007,4
`
	products, err := ParseProducts(strings.NewReader(shuffled))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].ID)
	require.NotNil(t, products[0].Department)
	assert.Equal(t, "Outdoors", *products[0].Department)
}

func TestParseProductsMissingColumn(t *testing.T) {
	_, err := ParseProducts(strings.NewReader("id,cost,name\n1,2.00,thing\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestParseProductsBadRow(t *testing.T) {
	bad := `id,cost,category,name,brand,retail_price,department,sku,distribution_center_id
not-a-number,1.00,c,n,b,2.00,Women,S,1
`
	_, err := ParseProducts(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseProductsEmptyFile(t *testing.T) {
	_, err := ParseProducts(strings.NewReader(""))
	require.Error(t, err)
}
